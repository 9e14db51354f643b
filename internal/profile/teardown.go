package profile

import (
	"context"
	"fmt"
	"log"

	"github.com/krishisahay/backend/internal/models"
)

// Purger removes one category of a user's records and reports how many
// rows went away.
type Purger interface {
	PurgeUser(ctx context.Context, userID int64) (int64, error)
}

// PurgerFunc adapts a plain function to Purger.
type PurgerFunc func(ctx context.Context, userID int64) (int64, error)

func (f PurgerFunc) PurgeUser(ctx context.Context, userID int64) (int64, error) {
	return f(ctx, userID)
}

// Teardown deletes all of a user's data across every category, best effort.
// Categories are independent: one failing does not stop the others, and the
// final logout happens regardless.
type Teardown struct {
	categories map[string]Purger
	logout     func(ctx context.Context, userID int64) error
}

func NewTeardown(categories map[string]Purger, logout func(ctx context.Context, userID int64) error) *Teardown {
	return &Teardown{categories: categories, logout: logout}
}

// Run purges every category and then logs the user out. The response
// aggregates row counts and names the categories that failed.
func (t *Teardown) Run(ctx context.Context, userID int64) models.DeleteAccountResponse {
	resp := models.DeleteAccountResponse{}

	for name, purger := range t.categories {
		n, err := purger.PurgeUser(ctx, userID)
		if err != nil {
			log.Printf("WARN: account teardown: %s purge failed for user %d: %v", name, userID, err)
			resp.Failures = append(resp.Failures, name)
			continue
		}
		resp.Deleted += int(n)
	}

	if err := t.logout(ctx, userID); err != nil {
		log.Printf("WARN: account teardown: logout failed for user %d: %v", userID, err)
		resp.Failures = append(resp.Failures, "account")
	} else {
		resp.LoggedOut = true
	}

	return resp
}

// ErrConfirmationMismatch rejects a deletion whose confirmation phrase is
// wrong.
var ErrConfirmationMismatch = fmt.Errorf("confirmation must be %q", models.DeleteAccountConfirmation)
