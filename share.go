package main

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// buildShareURL returns the platform-specific share link for a finished
// race. Unknown platforms get the bare invite link.
func buildShareURL(origin, roomID, platform string, wpm int) string {
	invite := origin + "/join/" + roomID
	text := "I just scored " + strconv.Itoa(wpm) + " WPM in a typing race! Join me for a race: "

	switch platform {
	case "twitter":
		return "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text) +
			"&url=" + url.QueryEscape(invite)
	case "facebook":
		return "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(invite) +
			"&quote=" + url.QueryEscape(text)
	case "whatsapp":
		return "https://api.whatsapp.com/send?text=" + url.QueryEscape(text+invite)
	default:
		return invite
	}
}

// serveJoinPage renders a minimal landing page for an invite link. Room
// existence isn't checked here; join errors surface over the websocket.
func serveJoinPage(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		roomID := strings.ToUpper(ps.ByName("roomid"))

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		io.WriteString(w, newPage("Join Race",
			"Room code: "+roomID+". Connect to /ws and send a joinRoom message to race."))
	}
}

// serveRoomQR generates a PNG QR code for the room's invite URL.
func serveRoomQR(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		roomID := strings.ToUpper(ps.ByName("roomid"))
		if roomID == "" {
			http.Error(w, "missing room id", http.StatusBadRequest)
			return
		}

		scheme := cfg.scheme()
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		// We are at /join/:roomid/qr; strip the trailing "/qr" to get the
		// invite URL.
		path := strings.TrimSuffix(r.URL.Path, "/qr")
		inviteURL := scheme + "://" + r.Host + path

		const qrSize = 320
		png, err := qrcode.Encode(inviteURL, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)

		written, err := w.Write(png)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: QR code for room %s (%s) to %s in %s",
			roomID,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}
