package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

const flashCookieName = "dai_flash"

// AddFlash queues messages for the next page load. Messages already queued
// on this request (e.g. an error plus a hint) are preserved.
func AddFlash(w http.ResponseWriter, r *http.Request, messages ...string) {
	existing := readFlashes(r)
	all := append(existing, messages...)

	payload, err := json.Marshal(all)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes returns queued messages and clears the flash cookie.
func PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	messages := readFlashes(r)
	if len(messages) == 0 {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return messages
}

func readFlashes(r *http.Request) []string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	payload, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var messages []string
	err = json.Unmarshal(payload, &messages)
	if err != nil {
		return nil
	}
	return messages
}
