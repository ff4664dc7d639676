package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/database"
)

//go:embed schema.sql
var Schema string

// ApplySchema creates every table that does not exist yet.
func ApplySchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
