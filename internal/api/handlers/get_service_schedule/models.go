package get_service_schedule

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

var (
	errMissingServices = errors.New("serviceId is required")
	errMissingRange    = errors.New("start and end are required")
)

// Query разобранные query параметры
type Query struct {
	ServiceIDs []string
	Start      time.Time
	End        time.Time
}

// ParseQuery разбирает serviceId (повторяемый или через запятую), start и end в RFC 3339
func ParseQuery(values url.Values) (*Query, error) {
	var ids []string
	for _, raw := range values["serviceId"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil, errMissingServices
	}

	startStr, endStr := values.Get("start"), values.Get("end")
	if startStr == "" || endStr == "" {
		return nil, errMissingRange
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, err
	}

	return &Query{ServiceIDs: ids, Start: start, End: end}, nil
}
