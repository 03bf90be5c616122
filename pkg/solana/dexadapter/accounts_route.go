package dexadapter

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	// Minimum serialized size (empty route).
	RouteAccountMinSize = (8 + // discriminator
		4) // value vec length
)

var RouteAccountDiscriminator = []byte{80, 179, 58, 115, 52, 19, 146, 134}

// RouteAccount stores the hop list for one ordered pair of route endpoints.
type RouteAccount struct {
	Value []RouteItem
}

func (obj *RouteAccount) Marshal() []byte {
	data := make([]byte, 8+routeItemsSize(obj.Value))

	var offset int
	putDiscriminator(data, RouteAccountDiscriminator, &offset)
	putRouteItems(data, obj.Value, &offset)

	return data
}

func (obj *RouteAccount) Unmarshal(data []byte) error {
	if len(data) < RouteAccountMinSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, RouteAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	if !getRouteItems(data, &obj.Value, &offset) {
		return ErrInvalidAccountData
	}

	return nil
}

func (obj *RouteAccount) String() string {
	items := make([]string, len(obj.Value))
	for i := range obj.Value {
		items[i] = obj.Value[i].String()
	}
	return fmt.Sprintf("Route{value=[%s]}", strings.Join(items, ","))
}
