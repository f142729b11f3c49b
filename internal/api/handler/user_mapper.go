package handler

import (
	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

func userFromDomain(u *domain.User, subscribed bool) userResponse {
	return userResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

func userFromProfile(p *ports.UserProfile) userResponse {
	return userFromDomain(p.User, p.IsSubscribed)
}

func briefFromPorts(b *ports.RecipeBrief) recipeBriefResponse {
	return recipeBriefResponse{
		ID:          b.ID,
		Name:        b.Name,
		Image:       b.Image,
		CookingTime: b.CookingTime,
	}
}

func subscriptionFromPorts(s *ports.Subscription) subscriptionResponse {
	recipes := make([]recipeBriefResponse, 0, len(s.Recipes))
	for i := range s.Recipes {
		recipes = append(recipes, briefFromPorts(&s.Recipes[i]))
	}
	return subscriptionResponse{
		userResponse: userFromDomain(s.User, s.IsSubscribed),
		Recipes:      recipes,
		RecipesCount: s.RecipesCount,
	}
}
