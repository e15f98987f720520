package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/SayMoreX/digame/internal/export"
	"github.com/SayMoreX/digame/internal/field"
	"github.com/SayMoreX/digame/internal/folder"
	"github.com/SayMoreX/digame/internal/importer"
	"github.com/SayMoreX/digame/internal/logging"
	"github.com/SayMoreX/digame/internal/schema"
	"github.com/SayMoreX/digame/internal/xmlexport"
)

// entityPayload is the JSON shape for entity mutation requests. Fields maps
// field key to serialized value (multilingual markers included). Keys the
// schema does not know become custom fields.
type entityPayload struct {
	Fields        []fieldPayload        `json:"fields"`
	Contributions []contributionPayload `json:"contributions,omitempty"`
	Languages     []languagePayload     `json:"languages,omitempty"`
}

// fieldPayload is one (key, value) assignment. A list rather than a map:
// assignment order determines serialization order, and JSON objects don't
// keep theirs.
type fieldPayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type contributionPayload struct {
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	Date     string `json:"date,omitempty"`
	Comments string `json:"comments,omitempty"`
}

type languagePayload struct {
	Code    string `json:"code"`
	Primary bool   `json:"primary,omitempty"`
	Mother  bool   `json:"mother,omitempty"`
	Father  bool   `json:"father,omitempty"`
}

func decodePayload(r *http.Request) (*entityPayload, error) {
	var payload entityPayload
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding request body: %w", err)
	}
	return &payload, nil
}

// applyFields assigns the payload's fields onto a folder, routing unknown
// keys to the custom group.
func applyFields(f *folder.Folder, payload *entityPayload) {
	for _, p := range payload.Fields {
		if _, known := schema.GetDefinition(f.Kind, p.Key); known {
			f.Properties.SetText(p.Key, p.Value)
		} else {
			f.Properties.AddCustomProperty(field.NewCustomField(p.Key, p.Value))
		}
	}
	for _, c := range payload.Contributions {
		f.Contributions = append(f.Contributions, field.Contribution{
			PersonReference: c.Name,
			Role:            c.Role,
			Date:            c.Date,
			Comments:        c.Comments,
		})
	}
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	summary := entitySummary(&s.project.Folder)
	s.mu.RUnlock()
	writeJSON(w, summary)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	applyFields(&s.project.Folder, payload)
	summary := entitySummary(&s.project.Folder)
	s.mu.Unlock()
	writeJSON(w, summary)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, err.Error())
		return
	}

	session := folder.NewSession()
	applyFields(&session.Folder, payload)

	// same-identifier sessions collide: the prior one is retired, never merged
	s.project.FinishSessionImport(session)

	logging.FromContext(r.Context()).Info("session created", "session_id", session.ID())
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, entitySummary(&session.Folder))
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, err.Error())
		return
	}

	person := folder.NewPerson()
	applyFields(&person.Folder, payload)
	for _, l := range payload.Languages {
		person.Languages = append(person.Languages, field.PersonLanguage{
			Code:    l.Code,
			Primary: l.Primary,
			Mother:  l.Mother,
			Father:  l.Father,
		})
	}
	s.project.AddPerson(person)

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, entitySummary(&person.Folder))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.project.Sessions()
	out := make([]map[string]string, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, entitySummary(&session.Folder))
	}
	writeJSON(w, out)
}

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	people := s.project.People()
	out := make([]map[string]string, 0, len(people))
	for _, person := range people {
		out = append(out, entitySummary(&person.Folder))
	}
	writeJSON(w, out)
}

func (s *Server) handleListRetiredSessions(w http.ResponseWriter, r *http.Request) {
	type retiredSummary struct {
		ID        string `json:"id"`
		SessionID string `json:"sessionId"`
		RetiredAt string `json:"retiredAt"`
	}
	retired := s.project.RetiredSessions()
	out := make([]retiredSummary, 0, len(retired))
	for _, rec := range retired {
		out = append(out, retiredSummary{
			ID:        rec.ID,
			SessionID: rec.Session.ID(),
			RetiredAt: rec.RetiredAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, out)
}

// entitySummary flattens an entity to key→serialized-value for JSON listing.
func entitySummary(f *folder.Folder) map[string]string {
	out := make(map[string]string, f.Properties.Len())
	for _, fld := range f.Properties.Values() {
		out[fld.Key] = fld.Text()
	}
	return out
}

func (s *Server) handleExportCsvZip(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	payloads := export.CsvPayloads(s.project, nil)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="digame-export.zip"`)
	if err := export.WriteZip(w, payloads); err != nil {
		// headers are gone; all we can do is log the sink failure
		logging.FromContext(r.Context()).Error("archive write failed", "error", err)
	}
}

func (s *Server) handleExportProjectXml(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	doc, err := xmlexport.LegacyXml("Project", &s.project.Folder, xmlexport.LegacyOptions{
		OutputEmptyCustomFields: s.cfg.Export.OutputEmptyCustomFields,
	})
	s.mu.RUnlock()
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, err.Error())
		return
	}
	writeXml(w, doc)
}

func (s *Server) handleExportSessionXml(w http.ResponseWriter, r *http.Request) {
	session := s.project.FindSession(chi.URLParam(r, "id"))
	if session == nil {
		writeError(r.Context(), w, http.StatusNotFound, "session not found")
		return
	}
	doc, err := xmlexport.LegacyXml("Session", &session.Folder, xmlexport.LegacyOptions{
		OutputTypeInTags:        true,
		OutputEmptyCustomFields: s.cfg.Export.OutputEmptyCustomFields,
	})
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, err.Error())
		return
	}
	writeXml(w, doc)
}

func (s *Server) handleExportSessionImdi(w http.ResponseWriter, r *http.Request) {
	session := s.project.FindSession(chi.URLParam(r, "id"))
	if session == nil {
		writeError(r.Context(), w, http.StatusNotFound, "session not found")
		return
	}
	// the IMDI header pulls language and location fields off the project
	s.mu.RLock()
	doc, err := xmlexport.ImdiSession(s.project, session)
	s.mu.RUnlock()
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, err.Error())
		return
	}
	writeXml(w, doc)
}

func writeXml(w http.ResponseWriter, doc string) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	fmt.Fprint(w, doc)
}

func (s *Server) handleImportSessions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
		writeError(r.Context(), w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	var grid *importer.Grid
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx":
		grid, err = importer.ReadXLSXGrid(file)
	default:
		grid, err = importer.ReadCSVGrid(file)
	}
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := importer.ImportSessions(s.project, grid, s.mapping)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, importer.ErrUnsupportedDestination) {
			status = http.StatusBadRequest
		}
		writeError(r.Context(), w, status, err.Error())
		return
	}

	logging.WithFields(r.Context(), "import_run_id", report.RunID).Info("import finished",
		"file", header.Filename,
		"imported", report.Imported,
		"skipped", report.Skipped,
		"warnings", len(report.Warnings))
	writeJSON(w, report)
}

func (s *Server) handleValidateSession(w http.ResponseWriter, r *http.Request) {
	if s.validator == nil {
		writeError(r.Context(), w, http.StatusServiceUnavailable, "no validation service configured")
		return
	}
	session := s.project.FindSession(chi.URLParam(r, "id"))
	if session == nil {
		writeError(r.Context(), w, http.StatusNotFound, "session not found")
		return
	}
	s.mu.RLock()
	doc, err := xmlexport.ImdiSession(s.project, session)
	s.mu.RUnlock()
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, err.Error())
		return
	}
	result, err := s.validator.Validate(r.Context(), doc)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, result)
}
