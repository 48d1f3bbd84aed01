package wishlist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
)

const StorageKey = "@HealthShopApp:wishlist"

var ErrMalformedSnapshot = errors.New("malformed wishlist snapshot")

func EncodeSnapshot(w domain.Wishlist) ([]byte, error) {
	if w == nil {
		w = domain.Wishlist{}
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshal wishlist failed: %w", err)
	}
	return data, nil
}

func DecodeSnapshot(data []byte) (domain.Wishlist, error) {
	var items domain.Wishlist
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if err := validate(items); err != nil {
		return nil, err
	}
	return items.Clone(), nil
}

func validate(items domain.Wishlist) error {
	seen := make(map[int64]struct{}, len(items))
	for _, p := range items {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: product %d appears twice", ErrMalformedSnapshot, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
