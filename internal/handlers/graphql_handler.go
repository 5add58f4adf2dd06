package handlers

import (
	"github.com/freementors/backend/internal/dto"
	"github.com/freementors/backend/internal/graph"
	"github.com/freementors/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// GraphQLHandler executes queries and mutations against the schema.
// Per the GraphQL-over-HTTP convention the response is always 200 with a
// {"data": ..., "errors": [...]} body; only a malformed envelope is a 400.
type GraphQLHandler struct {
	schema graphql.Schema
}

func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

func (h *GraphQLHandler) Post(c *fiber.Ctx) error {
	var req dto.GraphQLRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	ctx := graph.WithViewer(c.UserContext(), middleware.ViewerFrom(c))
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})
	return c.JSON(result)
}
