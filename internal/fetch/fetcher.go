package fetch

import (
	"context"
	"fmt"
	"strings"
)

// Item is one option object handed to normalization.
type Item = map[string]any

// ClientFor picks the default client for endpoint's scheme.
func ClientFor(endpoint string) Client {
	if strings.HasPrefix(endpoint, "ws://") || strings.HasPrefix(endpoint, "wss://") {
		return NewWebSocketClient().Client()
	}
	return NewHTTPClient().Client()
}

// Fetcher runs a Client and applies the response formatter to each item.
type Fetcher struct {
	Client    Client
	Formatter Formatter
}

// NewFetcher returns a Fetcher for endpoint. A nil client selects the
// default for the endpoint's scheme.
func NewFetcher(endpoint string, client Client, formatter Formatter) *Fetcher {
	if client == nil {
		client = ClientFor(endpoint)
	}
	return &Fetcher{Client: client, Formatter: formatter}
}

// Fetch loads url and returns the formatted items.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]Item, error) {
	raw, err := f.Client(ctx, url)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(raw))
	for i, r := range raw {
		if f.Formatter != nil {
			r = f.Formatter(r)
		}
		item, ok := toItem(r)
		if !ok {
			return nil, NewParseError(fmt.Sprintf("item %d is %T, want an object", i, r), nil)
		}
		items = append(items, item)
	}
	return items, nil
}

func toItem(v any) (Item, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[string]string:
		item := make(Item, len(t))
		for k, s := range t {
			item[k] = s
		}
		return item, true
	default:
		return nil, false
	}
}
