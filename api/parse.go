package api

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Deserializer turns a response body into a T
type Deserializer[T any] func(body []byte) (T, error)

// ParsePing decodes a Ping, requiring the message key
func ParsePing(body []byte) (Ping, error) {
	var p Ping
	if err := decode(body, &p, "Ping", "message"); err != nil {
		return Ping{}, err
	}
	return p, nil
}

// ParseSearch decodes a Search, requiring the hash and results keys
func ParseSearch(body []byte) (Search, error) {
	var s Search
	if err := decode(body, &s, "Search", "hash", "results"); err != nil {
		return Search{}, err
	}
	return s, nil
}

func decode(body []byte, dst interface{}, name string, keys ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return errors.Wrapf(err, "decoding %s", name)
	}
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			logrus.WithFields(logrus.Fields{
				"body":    string(body),
				"missing": k,
			}).Errorf("response data for %s is invalid", name)
			return errors.Wrapf(ErrInvalidResponse, "%s: missing %q", name, k)
		}
	}
	return errors.Wrapf(json.Unmarshal(body, dst), "decoding %s", name)
}
