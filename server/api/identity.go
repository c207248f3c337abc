package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
)

// Claim represents a single token claim
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Claims converts token claims to a list sorted by type, multi valued claims yield one entry per value
func Claims(claims map[string]interface{}) []*Claim {
	var ret = make([]*Claim, 0, len(claims))
	for name, value := range claims {
		for _, item := range claimValues(value) {
			ret = append(ret, &Claim{Type: name, Value: item})
		}
	}
	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].Type == ret[j].Type {
			return ret[i].Value < ret[j].Value
		}
		return ret[i].Type < ret[j].Type
	})
	return ret
}

func claimValues(value interface{}) []string {
	switch actual := value.(type) {
	case string:
		return []string{actual}
	case float64:
		return []string{strconv.FormatFloat(actual, 'f', -1, 64)}
	case bool:
		return []string{strconv.FormatBool(actual)}
	case []interface{}:
		var ret []string
		for _, item := range actual {
			ret = append(ret, claimValues(item)...)
		}
		return ret
	case []string:
		return actual
	case nil:
		return nil
	default:
		if data, err := json.Marshal(actual); err == nil {
			return []string{string(data)}
		}
		return []string{fmt.Sprint(actual)}
	}
}

func (s *Service) identityHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		s.unauthorized(w, r, nil)
		return
	}
	data, err := json.Marshal(Claims(claims))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.logger.Debugw("identity served", "client_id", claims["client_id"])
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
