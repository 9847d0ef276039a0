package rest

import "net/http"

func (s *Server) handlePresignUpload(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.attachments.GetPresignedPutURL(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.logger.Error(r.Context(), "presign failed", "err", err)
		writeMessage(w, http.StatusBadGateway, "Upload storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "url": url})
}

func (s *Server) handlePresignDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeMessage(w, http.StatusBadRequest, "Missing key")
		return
	}

	url, err := s.attachments.GetPresignedGetURL(r.Context(), key)
	if err != nil {
		s.logger.Error(r.Context(), "presign failed", "err", err)
		writeMessage(w, http.StatusBadGateway, "Upload storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
