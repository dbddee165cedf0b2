package blogcms

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	gslug "github.com/gosimple/slug"
)

const maxSlugProbes = 100

// DeriveSlug converts a title into a URL-safe slug.
func DeriveSlug(title string) string {
	return gslug.Make(title)
}

// uniqueSlug returns base, or base with a numeric suffix, such that no other
// post owns it.
func (m *Manager) uniqueSlug(ctx context.Context, base string, excludeID uuid.UUID) (string, error) {
	candidate := base
	for i := 2; i <= maxSlugProbes; i++ {
		taken, err := m.store.SlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return "", fmt.Errorf("no free slug found for %q", base)
}
