package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermissions(t *testing.T) {
	raw := []byte(`{"reserva":{"create":true,"read":true,"update":false,"delete":false}}`)

	set, err := ParsePermissions(raw)
	require.NoError(t, err)
	assert.True(t, set.Allowed(ResourceReserva, ActionCreate))
	assert.True(t, set.Allowed(ResourceReserva, ActionRead))
	assert.False(t, set.Allowed(ResourceReserva, ActionUpdate))
	assert.False(t, set.Allowed(ResourceReserva, ActionDelete))
}

func TestParsePermissionsEmptyDeniesEverything(t *testing.T) {
	set, err := ParsePermissions(nil)
	require.NoError(t, err)
	assert.False(t, set.Allowed(ResourceReserva, ActionRead))
}

func TestParsePermissionsRejectsMalformedBlob(t *testing.T) {
	_, err := ParsePermissions([]byte(`{"reserva": "todo"}`))
	assert.Error(t, err)
}

func TestAllowedDeniesUnknownResourceAndAction(t *testing.T) {
	set := PermissionSet{ResourceReserva: AllActions()}

	assert.False(t, set.Allowed("inventario", ActionRead))
	assert.False(t, set.Allowed(ResourceReserva, "approve"))
	assert.True(t, set.Allowed(ResourceReserva, ActionDelete))
}

func TestReadOnly(t *testing.T) {
	set := PermissionSet{ResourceDashboard: ReadOnly()}

	assert.True(t, set.Allowed(ResourceDashboard, ActionRead))
	assert.False(t, set.Allowed(ResourceDashboard, ActionCreate))
	assert.False(t, set.Allowed(ResourceDashboard, ActionUpdate))
	assert.False(t, set.Allowed(ResourceDashboard, ActionDelete))
}
