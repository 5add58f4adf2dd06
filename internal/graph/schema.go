// Package graph exposes the service layer as a single GraphQL schema. The
// viewer identity is threaded through the execution context as an explicit
// value; each resolver decides whether it requires one.
package graph

import (
	"errors"
	"log/slog"

	"github.com/freementors/backend/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/graphql-go/graphql"
)

// ErrNotAuthenticated is raised by resolvers that require a viewer.
var ErrNotAuthenticated = errors.New("Authentication required")

// knownErrs are the domain and auth failures that may travel to the client
// verbatim. Anything else is logged and replaced with a generic message.
var knownErrs = []error{
	ErrNotAuthenticated,
	services.ErrFieldsRequired,
	services.ErrPasswordTooShort,
	services.ErrEmailTaken,
	services.ErrInvalidCredentials,
	services.ErrTokenExpired,
	services.ErrInvalidToken,
	services.ErrUserNotFound,
	services.ErrNotAMentee,
	services.ErrNotAuthorized,
	services.ErrMentorNotFound,
	services.ErrSessionNotFound,
	services.ErrTopicRequired,
	services.ErrInvalidStatus,
	services.ErrInvalidSessionID,
	services.ErrInvalidRating,
	services.ErrSessionIncomplete,
	services.ErrReviewExists,
	services.ErrReviewNotFound,
}

// Resolver bundles the services behind the schema.
type Resolver struct {
	Auth     *services.AuthService
	Sessions *services.SessionService
	Reviews  *services.ReviewService
}

// fail passes known domain/auth errors through to the client and hides
// everything else behind a generic internal error.
func (r *Resolver) fail(action string, err error) error {
	for _, known := range knownErrs {
		if errors.Is(err, known) {
			return err
		}
	}
	slog.Error("resolver failed", "action", action, "error", err)
	sentry.CaptureException(err)
	return errors.New("Internal server error")
}

// NewSchema builds the executable schema.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					viewer := ViewerFrom(p.Context)
					if viewer == nil {
						return nil, ErrNotAuthenticated
					}
					return viewer, nil
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					viewer := ViewerFrom(p.Context)
					if viewer == nil {
						return nil, ErrNotAuthenticated
					}
					users, err := r.Auth.ListUsers(viewer)
					if err != nil {
						return nil, r.fail("users", err)
					}
					return users, nil
				},
			},
			"mentors": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if ViewerFrom(p.Context) == nil {
						return nil, ErrNotAuthenticated
					}
					mentors, err := r.Auth.ListMentors()
					if err != nil {
						return nil, r.fail("mentors", err)
					}
					return mentors, nil
				},
			},
			"mentor": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if ViewerFrom(p.Context) == nil {
						return nil, ErrNotAuthenticated
					}
					mentor, err := r.Auth.MentorByID(p.Args["id"].(string))
					if err != nil {
						return nil, r.fail("mentor", err)
					}
					return mentor, nil
				},
			},
			"allSessions": &graphql.Field{
				Type: graphql.NewList(sessionType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					viewer := ViewerFrom(p.Context)
					if viewer == nil {
						return nil, ErrNotAuthenticated
					}
					sessions, err := r.Sessions.ListAll(viewer)
					if err != nil {
						return nil, r.fail("allSessions", err)
					}
					return sessions, nil
				},
			},
			"userSessions": &graphql.Field{
				Type: graphql.NewList(sessionType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					viewer := ViewerFrom(p.Context)
					if viewer == nil {
						return nil, ErrNotAuthenticated
					}
					sessions, err := r.Sessions.ListForUser(viewer)
					if err != nil {
						return nil, r.fail("userSessions", err)
					}
					return sessions, nil
				},
			},
			"allReviews": &graphql.Field{
				Type: graphql.NewList(reviewType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					viewer := ViewerFrom(p.Context)
					if viewer == nil {
						return nil, ErrNotAuthenticated
					}
					reviews, err := r.Reviews.ListAll(viewer)
					if err != nil {
						return nil, r.fail("allReviews", err)
					}
					return reviews, nil
				},
			},
			// mentorReviews is public: it backs the anonymous mentor profile
			// page.
			"mentorReviews": &graphql.Field{
				Type: graphql.NewList(reviewType),
				Args: graphql.FieldConfigArgument{
					"mentorId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					reviews, err := r.Reviews.ListForMentor(p.Args["mentorId"].(string))
					if err != nil {
						return nil, r.fail("mentorReviews", err)
					}
					return reviews, nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser":             r.createUserField(),
			"updateUser":             r.updateUserField(),
			"changeToMentor":         r.changeToMentorField(),
			"tokenAuth":              r.tokenAuthField(),
			"verifyToken":            r.verifyTokenField(),
			"refreshToken":           r.refreshTokenField(),
			"createSession":          r.createSessionField(),
			"updateSessionStatus":    r.updateSessionStatusField(),
			"createReview":           r.createReviewField(),
			"updateReviewVisibility": r.updateReviewVisibilityField(),
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
