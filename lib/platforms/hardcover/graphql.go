package hardcover

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type graphqlQueryObject struct {
	Name      string `json:"operationName"`
	Variables any    `json:"variables"`
	Query     string `json:"query"`
}

type graphqlQueryResult struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphqlError  `json:"errors"`
}

func graphqlQuery[Input, Output any](
	ctx context.Context,
	client *resty.Client,
	name,
	query string,
	variables Input,
) (Output, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("graphql:%s", name))
	defer span.End()
	span.SetAttributes(attribute.String("custom.name", name))

	var defaultOut Output

	body, err := json.Marshal(graphqlQueryObject{
		Name:      name,
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		span.SetStatus(codes.Error, "failed to serialize json query")
		return defaultOut, err
	}

	res, err := client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v1/graphql")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return defaultOut, fmt.Errorf("hardcover api connection error: %w", err)
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "unexpected status")
		return defaultOut, &StatusError{StatusCode: res.StatusCode(), Body: res.String()}
	}

	var result graphqlQueryResult
	err = json.Unmarshal(res.Body(), &result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		return defaultOut, &DecodeError{Err: err}
	}
	if len(result.Errors) > 0 {
		err := &APIError{Errors: result.Errors}
		span.RecordError(err)
		span.SetStatus(codes.Error, "graphql errors")
		return defaultOut, err
	}
	if len(result.Data) == 0 || string(result.Data) == "null" {
		span.SetStatus(codes.Error, "missing data")
		return defaultOut, ErrUnexpectedShape
	}

	var out Output
	err = json.Unmarshal(result.Data, &out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected data shape")
		return defaultOut, fmt.Errorf("%w: %s", ErrUnexpectedShape, err)
	}
	return out, nil
}
