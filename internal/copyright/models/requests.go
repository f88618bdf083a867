package models

import (
	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
)

// RegisterCopyrightRequest is the POST /copyrights body.
type RegisterCopyrightRequest struct {
	RUID     string   `json:"ruid"`
	PUID     string   `json:"puid"`
	WUID     []string `json:"wuid"`
	OpusType string   `json:"opus_type"`

	ruid id.RUID
	puid id.PUID
	wuid []id.WUID
}

// Validate parses the hex identifiers. Semantic checks (zero key, empty
// content list, blank type) are left to NewRegistration.
func (r *RegisterCopyrightRequest) Validate() error {
	var err error
	if r.ruid, err = id.ParseRUID(r.RUID); err != nil {
		return err
	}
	if r.puid, err = id.ParsePUID(r.PUID); err != nil {
		return err
	}
	if len(r.WUID) > MaxWorks {
		return dErrors.New(dErrors.CodeValidation, "too many content identifiers")
	}
	r.wuid = make([]id.WUID, 0, len(r.WUID))
	for _, raw := range r.WUID {
		w, err := id.ParseWUID(raw)
		if err != nil {
			return err
		}
		r.wuid = append(r.wuid, w)
	}
	return nil
}

// Parsed returns the identifiers decoded by Validate.
func (r *RegisterCopyrightRequest) Parsed() (id.RUID, id.PUID, []id.WUID) {
	return r.ruid, r.puid, r.wuid
}

// StatusResponse answers GET /copyrights/{ruid}/status.
type StatusResponse struct {
	RUID       id.RUID `json:"ruid"`
	Registered bool    `json:"registered"`
}
