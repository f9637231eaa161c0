package reservation

import "github.com/edvin/ri-utilization/internal/model"

// fieldKeys names the target key for each optional filter field of a request.
type fieldKeys[K ~string] struct {
	Region        K
	Service       K
	LinkedAccount K
}

// appendIfPresent appends build(key, *value) to list when value is set.
// An absent value contributes nothing.
func appendIfPresent[T any, K ~string](list []T, value *string, key K, build func(K, string) T) []T {
	if value == nil {
		return list
	}
	return append(list, build(key, *value))
}

// collectFields walks the optional filter fields of req in the fixed order
// region, service, linked account.
func collectFields[T any, K ~string](req *model.InvocationRequest, keys fieldKeys[K], build func(K, string) T) []T {
	var out []T
	out = appendIfPresent(out, req.Region, keys.Region, build)
	out = appendIfPresent(out, req.Service, keys.Service, build)
	out = appendIfPresent(out, req.LinkedAccount, keys.LinkedAccount, build)
	return out
}
