package entities

import "encoding/json"

// AuditEvent is the payload published to the audit queue after a response
// finishes. Datos carries the sanitized request body and route params.
type AuditEvent struct {
	IDUsuario *int                   `json:"idUsuario"`
	Status    int                    `json:"status"`
	Ruta      string                 `json:"ruta"`
	Metodo    string                 `json:"metodo"`
	Accion    string                 `json:"accion"`
	Fecha     string                 `json:"fecha"`
	Datos     map[string]interface{} `json:"datos"`
}

// AuditListItem is the row shape of GET /auditorias, newest first.
type AuditListItem struct {
	ID        int             `json:"id"`
	IDUsuario *int            `json:"idUsuario"`
	Usuario   string          `json:"usuario"`
	Status    int             `json:"status"`
	Ruta      string          `json:"ruta"`
	Metodo    string          `json:"metodo"`
	Accion    string          `json:"accion"`
	Fecha     string          `json:"fecha"`
	Datos     json.RawMessage `json:"datos"`
}
