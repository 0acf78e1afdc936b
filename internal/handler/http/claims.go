package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

// claimsFromContext pulls the acting user and company out of the verified
// token. Both claims are required on every authenticated route.
func claimsFromContext(ctx context.Context) (userID, companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	companyID, ok = claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return userID, companyID, nil
}

// uuidParam reads a path parameter and rejects anything that is not a UUID
// before it reaches the database.
func uuidParam(r *http.Request, name string) (string, error) {
	id := chi.URLParam(r, name)
	if err := uuid.Validate(id); err != nil {
		return "", fmt.Errorf("%s must be a valid UUID", name)
	}
	return id, nil
}
