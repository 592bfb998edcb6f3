package hardcover

import (
	"context"
	"log/slog"
)

// StatusWantToRead is the user_books status_id of the "Want to Read" shelf.
const StatusWantToRead = 1

const wantToReadQuery = `query GetWantToRead($status: Int!) {
  me {
    user_books(where: {status_id: {_eq: $status}}) {
      book {
        title
        contributions {
          author {
            name
          }
        }
      }
    }
  }
}`

type wantToReadInput struct {
	Status int `json:"status"`
}

type Book struct {
	Title   string
	Authors []string
}

type wantToReadData struct {
	Me []struct {
		UserBooks *[]struct {
			Book *struct {
				Title         string `json:"title"`
				Contributions []struct {
					Author *struct {
						Name string `json:"name"`
					} `json:"author"`
				} `json:"contributions"`
			} `json:"book"`
		} `json:"user_books"`
	} `json:"me"`
}

// flattenWantToRead turns the nested response into books, dropping books
// without a title and contributions without a named author.
func flattenWantToRead(data wantToReadData) ([]Book, error) {
	if len(data.Me) == 0 || data.Me[0].UserBooks == nil {
		return nil, ErrUnexpectedShape
	}

	books := []Book{}
	for _, userBook := range *data.Me[0].UserBooks {
		if userBook.Book == nil || userBook.Book.Title == "" {
			continue
		}
		authors := []string{}
		for _, c := range userBook.Book.Contributions {
			if c.Author == nil || c.Author.Name == "" {
				continue
			}
			authors = append(authors, c.Author.Name)
		}
		books = append(books, Book{
			Title:   userBook.Book.Title,
			Authors: authors,
		})
	}
	return books, nil
}

// WantToRead fetches the authenticated user's "Want to Read" shelf.
func (c *Client) WantToRead(ctx context.Context) ([]Book, error) {
	ctx, span := tracer.Start(ctx, "client:WantToRead")
	defer span.End()

	data, err := graphqlQuery[wantToReadInput, wantToReadData](
		ctx, c.http,
		"GetWantToRead",
		wantToReadQuery,
		wantToReadInput{Status: StatusWantToRead},
	)
	if err != nil {
		return nil, err
	}

	books, err := flattenWantToRead(data)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "fetched want to read shelf", "books", len(books))
	return books, nil
}
