// internal/handlers/version.go
package handlers

import "net/http"

// VersionHandler serves /v?action=login, the client's startup gate: an outdated
// client gets FAIL "UPDATE", a disallowed name gets the name rule's message.
func (s *Server) VersionHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("action") != "login" {
		writeFailMsg(w, "No action found.")
		return
	}
	if s.opts.CurrentVersion != "" && q.Get("version") != s.opts.CurrentVersion {
		writeFailMsg(w, "UPDATE")
		return
	}
	if err := s.svc.ValidateName(q.Get("name")); err != nil {
		s.writeFail(w, r, err)
		return
	}
	writeOK(w, "OK")
}
