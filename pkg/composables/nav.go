package composables

import (
	"context"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/constants"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/types"
)

// UseNavItems returns the localized navigation tree placed in the context by
// middleware.NavItems. Missing middleware yields an empty tree.
func UseNavItems(ctx context.Context) []types.NavigationItem {
	items, ok := ctx.Value(constants.NavItemsKey).([]types.NavigationItem)
	if !ok {
		return nil
	}
	return items
}
