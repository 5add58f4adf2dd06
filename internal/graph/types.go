package graph

import (
	"github.com/freementors/backend/internal/models"
	"github.com/graphql-go/graphql"
)

// Object types mirror the original wire surface: the User type exposes the
// profile fields only (no password hash, no staff flag).

func userSource(p graphql.ResolveParams) *models.User {
	switch u := p.Source.(type) {
	case *models.User:
		return u
	case models.User:
		return &u
	}
	return nil
}

func sessionSource(p graphql.ResolveParams) *models.MentorshipSession {
	switch s := p.Source.(type) {
	case *models.MentorshipSession:
		return s
	case models.MentorshipSession:
		return &s
	}
	return nil
}

func reviewSource(p graphql.ResolveParams) *models.Review {
	switch r := p.Source.(type) {
	case *models.Review:
		return r
	case models.Review:
		return &r
	}
	return nil
}

func userField(resolve func(*models.User) (interface{}, error), typ graphql.Output) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			u := userSource(p)
			if u == nil {
				return nil, nil
			}
			return resolve(u)
		},
	}
}

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":         userField(func(u *models.User) (interface{}, error) { return u.ID.String(), nil }, graphql.NewNonNull(graphql.ID)),
		"firstName":  userField(func(u *models.User) (interface{}, error) { return u.FirstName, nil }, graphql.String),
		"lastName":   userField(func(u *models.User) (interface{}, error) { return u.LastName, nil }, graphql.String),
		"email":      userField(func(u *models.User) (interface{}, error) { return u.Email, nil }, graphql.String),
		"address":    userField(func(u *models.User) (interface{}, error) { return u.Address, nil }, graphql.String),
		"bio":        userField(func(u *models.User) (interface{}, error) { return u.Bio, nil }, graphql.String),
		"occupation": userField(func(u *models.User) (interface{}, error) { return u.Occupation, nil }, graphql.String),
		"expertise":  userField(func(u *models.User) (interface{}, error) { return u.Expertise, nil }, graphql.String),
		"userType":   userField(func(u *models.User) (interface{}, error) { return u.Role, nil }, graphql.String),
	},
})

func sessionField(resolve func(*models.MentorshipSession) (interface{}, error), typ graphql.Output) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			s := sessionSource(p)
			if s == nil {
				return nil, nil
			}
			return resolve(s)
		},
	}
}

var sessionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MentorshipSession",
	Fields: graphql.Fields{
		"id":        sessionField(func(s *models.MentorshipSession) (interface{}, error) { return s.ID.String(), nil }, graphql.NewNonNull(graphql.ID)),
		"mentor":    sessionField(func(s *models.MentorshipSession) (interface{}, error) { return s.Mentor, nil }, userType),
		"mentee":    sessionField(func(s *models.MentorshipSession) (interface{}, error) { return s.Mentee, nil }, userType),
		"topic":     sessionField(func(s *models.MentorshipSession) (interface{}, error) { return s.Topic, nil }, graphql.String),
		"questions": sessionField(func(s *models.MentorshipSession) (interface{}, error) { return s.Questions, nil }, graphql.String),
		"status":    sessionField(func(s *models.MentorshipSession) (interface{}, error) { return s.Status, nil }, graphql.String),
		"createdAt": sessionField(func(s *models.MentorshipSession) (interface{}, error) { return s.CreatedAt, nil }, graphql.DateTime),
		"updatedAt": sessionField(func(s *models.MentorshipSession) (interface{}, error) { return s.UpdatedAt, nil }, graphql.DateTime),
	},
})

func reviewField(resolve func(*models.Review) (interface{}, error), typ graphql.Output) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			r := reviewSource(p)
			if r == nil {
				return nil, nil
			}
			return resolve(r)
		},
	}
}

var reviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Review",
	Fields: graphql.Fields{
		"id":        reviewField(func(r *models.Review) (interface{}, error) { return r.ID.String(), nil }, graphql.NewNonNull(graphql.ID)),
		"session":   reviewField(func(r *models.Review) (interface{}, error) { return r.Session, nil }, sessionType),
		"rating":    reviewField(func(r *models.Review) (interface{}, error) { return r.Rating, nil }, graphql.Int),
		"content":   reviewField(func(r *models.Review) (interface{}, error) { return r.Content, nil }, graphql.String),
		"isVisible": reviewField(func(r *models.Review) (interface{}, error) { return r.IsVisible, nil }, graphql.Boolean),
		"createdAt": reviewField(func(r *models.Review) (interface{}, error) { return r.CreatedAt, nil }, graphql.DateTime),
		"updatedAt": reviewField(func(r *models.Review) (interface{}, error) { return r.UpdatedAt, nil }, graphql.DateTime),
	},
})

var tokenPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TokenPayload",
	Fields: graphql.Fields{
		"userId": &graphql.Field{Type: graphql.ID},
		"iat":    &graphql.Field{Type: graphql.Int},
		"exp":    &graphql.Field{Type: graphql.Int},
	},
})
