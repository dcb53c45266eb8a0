package domain

import "time"

// patch copies *src into dst when src is present. It is the building block of
// every Update DTO's Apply method: absent fields leave the record untouched.
func patch[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

// patchRef sets an optional reference. A present zero id clears the reference.
func patchRef(dst **uint, src *uint) {
	if src == nil {
		return
	}
	if *src == 0 {
		*dst = nil
		return
	}
	id := *src
	*dst = &id
}

// ref normalizes an optional reference taken from a create form, where an
// empty select submits 0.
func ref(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}

// today returns the current UTC date as YYYY-MM-DD.
func today() string {
	return time.Now().UTC().Format(time.DateOnly)
}

// invalidTransition reports an action that is not allowed from the record's
// current status.
func invalidTransition(resource, action, status string) error {
	return NewAppError(CodeValidation, resource+" cannot "+action+" from status "+status, nil)
}
