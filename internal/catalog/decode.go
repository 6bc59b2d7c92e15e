package catalog

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/salesquery/pkg/core"
)

// dateLayout is how DATE values are rendered when a driver hands back
// time.Time for a column the records keep as text.
const dateLayout = "2006-01-02"

// timeToDateString lets string fields absorb DATE/TIMESTAMP columns.
func timeToDateString(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	if t, ok := data.(time.Time); ok {
		return t.Format(dateLayout), nil
	}
	return data, nil
}

// decodeRows converts a result set into typed records. Column names match
// mapstructure tags case-insensitively, and numbers, strings and bools
// convert between each other so drivers that type columns differently
// still decode.
func decodeRows[T any](rs *core.ResultSet) ([]T, error) {
	out := make([]T, 0, rs.Len())
	for i, row := range rs.Rows {
		var rec T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook:       timeToDateString,
			WeaklyTypedInput: true,
			Result:           &rec,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(map[string]any(row)); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// fetch runs q and decodes its rows into T.
func fetch[T any](ctx context.Context, src Source, q Query) ([]T, error) {
	rs, err := q.Run(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", q.Name, err)
	}
	recs, err := decodeRows[T](rs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", q.Name, err)
	}
	return recs, nil
}
