package graph

import (
	"github.com/freementors/backend/internal/services"
	"github.com/graphql-go/graphql"
)

// Mutation payloads follow the original schema: each mutation returns a small
// object wrapping its result field. Payload sources are plain maps, resolved
// by the default field resolver.

var (
	createUserPayload = graphql.NewObject(graphql.ObjectConfig{
		Name:   "CreateUserPayload",
		Fields: graphql.Fields{"user": &graphql.Field{Type: userType}},
	})
	updateUserPayload = graphql.NewObject(graphql.ObjectConfig{
		Name:   "UpdateUserPayload",
		Fields: graphql.Fields{"user": &graphql.Field{Type: userType}},
	})
	changeToMentorPayload = graphql.NewObject(graphql.ObjectConfig{
		Name:   "ChangeToMentorPayload",
		Fields: graphql.Fields{"user": &graphql.Field{Type: userType}},
	})
	tokenAuthPayload = graphql.NewObject(graphql.ObjectConfig{
		Name:   "TokenAuthPayload",
		Fields: graphql.Fields{"token": &graphql.Field{Type: graphql.String}},
	})
	verifyTokenPayload = graphql.NewObject(graphql.ObjectConfig{
		Name:   "VerifyTokenPayload",
		Fields: graphql.Fields{"payload": &graphql.Field{Type: tokenPayloadType}},
	})
	refreshTokenPayload = graphql.NewObject(graphql.ObjectConfig{
		Name:   "RefreshTokenPayload",
		Fields: graphql.Fields{"token": &graphql.Field{Type: graphql.String}},
	})
	createSessionPayload = graphql.NewObject(graphql.ObjectConfig{
		Name:   "CreateSessionPayload",
		Fields: graphql.Fields{"session": &graphql.Field{Type: sessionType}},
	})
	updateSessionStatusPayload = graphql.NewObject(graphql.ObjectConfig{
		Name:   "UpdateSessionStatusPayload",
		Fields: graphql.Fields{"session": &graphql.Field{Type: sessionType}},
	})
	createReviewPayload = graphql.NewObject(graphql.ObjectConfig{
		Name:   "CreateReviewPayload",
		Fields: graphql.Fields{"review": &graphql.Field{Type: reviewType}},
	})
	updateReviewVisibilityPayload = graphql.NewObject(graphql.ObjectConfig{
		Name:   "UpdateReviewVisibilityPayload",
		Fields: graphql.Fields{"review": &graphql.Field{Type: reviewType}},
	})
)

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

// optionalStringArg distinguishes an absent argument from an explicit empty
// string: absent (or null) yields nil, present yields a pointer.
func optionalStringArg(p graphql.ResolveParams, name string) *string {
	if v, ok := p.Args[name].(string); ok {
		return &v
	}
	return nil
}

func (r *Resolver) createUserField() *graphql.Field {
	return &graphql.Field{
		Type: createUserPayload,
		Args: graphql.FieldConfigArgument{
			"firstName":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"lastName":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"password":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"address":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"bio":        &graphql.ArgumentConfig{Type: graphql.String},
			"occupation": &graphql.ArgumentConfig{Type: graphql.String},
			"expertise":  &graphql.ArgumentConfig{Type: graphql.String},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := r.Auth.Signup(services.SignupInput{
				FirstName:  stringArg(p, "firstName"),
				LastName:   stringArg(p, "lastName"),
				Email:      stringArg(p, "email"),
				Password:   stringArg(p, "password"),
				Address:    stringArg(p, "address"),
				Bio:        stringArg(p, "bio"),
				Occupation: stringArg(p, "occupation"),
				Expertise:  stringArg(p, "expertise"),
			})
			if err != nil {
				return nil, r.fail("createUser", err)
			}
			return map[string]interface{}{"user": user}, nil
		},
	}
}

func (r *Resolver) updateUserField() *graphql.Field {
	return &graphql.Field{
		Type: updateUserPayload,
		Args: graphql.FieldConfigArgument{
			"firstName":  &graphql.ArgumentConfig{Type: graphql.String},
			"lastName":   &graphql.ArgumentConfig{Type: graphql.String},
			"address":    &graphql.ArgumentConfig{Type: graphql.String},
			"bio":        &graphql.ArgumentConfig{Type: graphql.String},
			"occupation": &graphql.ArgumentConfig{Type: graphql.String},
			"expertise":  &graphql.ArgumentConfig{Type: graphql.String},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			viewer := ViewerFrom(p.Context)
			if viewer == nil {
				return nil, ErrNotAuthenticated
			}
			user, err := r.Auth.UpdateProfile(viewer, services.ProfilePatch{
				FirstName:  optionalStringArg(p, "firstName"),
				LastName:   optionalStringArg(p, "lastName"),
				Address:    optionalStringArg(p, "address"),
				Bio:        optionalStringArg(p, "bio"),
				Occupation: optionalStringArg(p, "occupation"),
				Expertise:  optionalStringArg(p, "expertise"),
			})
			if err != nil {
				return nil, r.fail("updateUser", err)
			}
			return map[string]interface{}{"user": user}, nil
		},
	}
}

func (r *Resolver) changeToMentorField() *graphql.Field {
	return &graphql.Field{
		Type: changeToMentorPayload,
		Args: graphql.FieldConfigArgument{
			"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			viewer := ViewerFrom(p.Context)
			if viewer == nil {
				return nil, ErrNotAuthenticated
			}
			user, err := r.Auth.Promote(viewer, stringArg(p, "userId"))
			if err != nil {
				return nil, r.fail("changeToMentor", err)
			}
			return map[string]interface{}{"user": user}, nil
		},
	}
}

func (r *Resolver) tokenAuthField() *graphql.Field {
	return &graphql.Field{
		Type: tokenAuthPayload,
		Args: graphql.FieldConfigArgument{
			"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := r.Auth.Authenticate(stringArg(p, "email"), stringArg(p, "password"))
			if err != nil {
				return nil, r.fail("tokenAuth", err)
			}
			token, err := r.Auth.IssueToken(user)
			if err != nil {
				return nil, r.fail("tokenAuth", err)
			}
			return map[string]interface{}{"token": token}, nil
		},
	}
}

func (r *Resolver) verifyTokenField() *graphql.Field {
	return &graphql.Field{
		Type: verifyTokenPayload,
		Args: graphql.FieldConfigArgument{
			"token": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			payload, err := r.Auth.VerifyToken(stringArg(p, "token"))
			if err != nil {
				return nil, r.fail("verifyToken", err)
			}
			return map[string]interface{}{
				"payload": map[string]interface{}{
					"userId": payload.UserID,
					"iat":    payload.Iat,
					"exp":    payload.Exp,
				},
			}, nil
		},
	}
}

func (r *Resolver) refreshTokenField() *graphql.Field {
	return &graphql.Field{
		Type: refreshTokenPayload,
		Args: graphql.FieldConfigArgument{
			"token": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			token, err := r.Auth.RefreshToken(stringArg(p, "token"))
			if err != nil {
				return nil, r.fail("refreshToken", err)
			}
			return map[string]interface{}{"token": token}, nil
		},
	}
}

func (r *Resolver) createSessionField() *graphql.Field {
	return &graphql.Field{
		Type: createSessionPayload,
		Args: graphql.FieldConfigArgument{
			"mentorId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			"topic":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"questions": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			viewer := ViewerFrom(p.Context)
			if viewer == nil {
				return nil, ErrNotAuthenticated
			}
			session, err := r.Sessions.Create(viewer, stringArg(p, "mentorId"), stringArg(p, "topic"), stringArg(p, "questions"))
			if err != nil {
				return nil, r.fail("createSession", err)
			}
			return map[string]interface{}{"session": session}, nil
		},
	}
}

func (r *Resolver) updateSessionStatusField() *graphql.Field {
	return &graphql.Field{
		Type: updateSessionStatusPayload,
		Args: graphql.FieldConfigArgument{
			"sessionId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			"status":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			viewer := ViewerFrom(p.Context)
			if viewer == nil {
				return nil, ErrNotAuthenticated
			}
			session, err := r.Sessions.UpdateStatus(viewer, stringArg(p, "sessionId"), stringArg(p, "status"))
			if err != nil {
				return nil, r.fail("updateSessionStatus", err)
			}
			return map[string]interface{}{"session": session}, nil
		},
	}
}

func (r *Resolver) createReviewField() *graphql.Field {
	return &graphql.Field{
		Type: createReviewPayload,
		Args: graphql.FieldConfigArgument{
			"sessionId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			"rating":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			"content":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			viewer := ViewerFrom(p.Context)
			if viewer == nil {
				return nil, ErrNotAuthenticated
			}
			rating, _ := p.Args["rating"].(int)
			review, err := r.Reviews.Create(viewer, stringArg(p, "sessionId"), rating, stringArg(p, "content"))
			if err != nil {
				return nil, r.fail("createReview", err)
			}
			return map[string]interface{}{"review": review}, nil
		},
	}
}

func (r *Resolver) updateReviewVisibilityField() *graphql.Field {
	return &graphql.Field{
		Type: updateReviewVisibilityPayload,
		Args: graphql.FieldConfigArgument{
			"reviewId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			"isVisible": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			viewer := ViewerFrom(p.Context)
			if viewer == nil {
				return nil, ErrNotAuthenticated
			}
			visible, _ := p.Args["isVisible"].(bool)
			review, err := r.Reviews.SetVisibility(viewer, stringArg(p, "reviewId"), visible)
			if err != nil {
				return nil, r.fail("updateReviewVisibility", err)
			}
			return map[string]interface{}{"review": review}, nil
		},
	}
}
