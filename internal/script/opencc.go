package script

import (
	"fmt"

	"github.com/longbridgeapp/opencc"
)

// S2HK returns a Transform converting Simplified Chinese to Traditional
// Chinese (Hong Kong standard). Dictionary loading happens once here; the
// returned Transform keeps the input unchanged on conversion errors rather
// than failing the record.
func S2HK() (Transform, error) {
	cc, err := opencc.New("s2hk")
	if err != nil {
		return nil, fmt.Errorf("load s2hk converter: %w", err)
	}
	return func(s string) string {
		if s == "" {
			return s
		}
		out, err := cc.Convert(s)
		if err != nil {
			return s
		}
		return out
	}, nil
}
