package inertia

import "net/http"

// FlashMessage is a one-shot notification kept in the session until the
// next render.
type FlashMessage struct {
	Message  string `json:"message" msgpack:"message"`
	Category string `json:"category" msgpack:"category"`
}

// Flash categories, by convention.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// Flash appends a one-shot message to the session. It appears under
// Config.FlashMessageKey in the props of the next render and is gone
// afterwards. Returns ErrFlashDisabled when flash messages are not
// enabled in the configuration, ErrNoSessions when no store is wired.
func (i *Inertia) Flash(message, category string) error {
	if !i.adapter.cfg.UseFlashMessages {
		return ErrFlashDisabled
	}
	if i.session == nil {
		return ErrNoSessions
	}

	key := i.adapter.cfg.FlashMessagesSessionKey
	raw, _ := i.session.Get(key)
	msgs := flashMessagesFrom(raw)
	msgs = append(msgs, FlashMessage{Message: message, Category: category})
	i.session.Set(key, msgs)
	return nil
}

// FlashValidationError records a one-shot field error. Errors appear as
// a field-to-message mapping under Config.FlashErrorKey in the props of
// the next render.
func (i *Inertia) FlashValidationError(field, message string) error {
	if !i.adapter.cfg.UseFlashErrors {
		return ErrFlashErrorsDisabled
	}
	if i.session == nil {
		return ErrNoSessions
	}

	key := i.adapter.cfg.FlashErrorsSessionKey
	raw, _ := i.session.Get(key)
	errs := flashErrorsFrom(raw)
	errs[field] = message
	i.session.Set(key, errs)
	return nil
}

// popFlash moves flashed messages and errors out of the session into
// the prop set (read-once). Runs after partial/lazy filtering, so flash
// data is always part of the payload regardless of the requested keys.
func (i *Inertia) popFlash(props Props) {
	if i.session == nil {
		return
	}
	if i.adapter.cfg.UseFlashMessages {
		raw, _ := i.session.Pop(i.adapter.cfg.FlashMessagesSessionKey)
		props[i.adapter.cfg.FlashMessageKey] = flashMessagesFrom(raw)
	}
	if i.adapter.cfg.UseFlashErrors {
		raw, _ := i.session.Pop(i.adapter.cfg.FlashErrorsSessionKey)
		props[i.adapter.cfg.FlashErrorKey] = flashErrorsFrom(raw)
	}
}

// Back redirects to the request's Referer: a method-preserving 307 for
// GET requests, a method-changing 303 for everything else, so a POST
// that flashed a message lands back on the page as a GET.
func (i *Inertia) Back(w http.ResponseWriter) {
	status := http.StatusSeeOther
	if i.request.Method == http.MethodGet {
		status = http.StatusTemporaryRedirect
	}
	i.saveSession(w)
	http.Redirect(w, i.request, i.request.Header.Get("Referer"), status)
}

// Location answers with a 409 carrying the forced-navigation header,
// which makes the client leave the SPA and do a real browser visit.
// Use it to redirect outside the protocol's scope.
func Location(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderLocation, url)
	w.WriteHeader(http.StatusConflict)
}

// flashMessagesFrom normalizes a session value into flash messages.
// Values written in-process are []FlashMessage; values that went
// through a store's serialization come back as []any of maps.
func flashMessagesFrom(raw any) []FlashMessage {
	switch v := raw.(type) {
	case nil:
		return []FlashMessage{}
	case []FlashMessage:
		return v
	case []any:
		msgs := make([]FlashMessage, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			msg := FlashMessage{}
			if s, ok := m["message"].(string); ok {
				msg.Message = s
			}
			if s, ok := m["category"].(string); ok {
				msg.Category = s
			}
			msgs = append(msgs, msg)
		}
		return msgs
	default:
		return []FlashMessage{}
	}
}

// flashErrorsFrom normalizes a session value into a field-error map.
func flashErrorsFrom(raw any) map[string]string {
	switch v := raw.(type) {
	case nil:
		return map[string]string{}
	case map[string]string:
		return v
	case map[string]any:
		errs := make(map[string]string, len(v))
		for k, item := range v {
			if s, ok := item.(string); ok {
				errs[k] = s
			}
		}
		return errs
	default:
		return map[string]string{}
	}
}
