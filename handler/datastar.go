package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarAcceptHeader marks requests sent by datastar.
	DataStarAcceptHeader = "text/event-stream"
	// DataStarQueryParam carries signals of datastar GET requests.
	DataStarQueryParam = "datastar"
)

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
	PatchBefore  = datastar.ElementPatchModeBefore
	PatchAfter   = datastar.ElementPatchModeAfter
)

// IsDataStar reports whether r was sent by datastar.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	if r.URL.Query().Has(DataStarQueryParam) {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/x-datastar")
}

// NewSSE starts a datastar event stream.
func NewSSE(w http.ResponseWriter, r *http.Request) *datastar.ServerSentEventGenerator {
	return datastar.NewSSE(w, r)
}

type signalsResponse struct {
	signals any
	json    []JSONOption
}

func (s signalsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return JSON(s.signals, s.json...).Render(w, r)
	}
	data, err := json.Marshal(s.signals)
	if err != nil {
		return err
	}
	return NewSSE(w, r).PatchSignals(data)
}

// Signals patches datastar signals, for example
// {"validation": {...}} after compiling a form. Other requests get the
// same value as JSON configured by opts.
func Signals(signals any, opts ...JSONOption) Response {
	return signalsResponse{signals: signals, json: opts}
}
