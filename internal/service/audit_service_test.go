package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStripsCredentialKeys(t *testing.T) {
	data := map[string]interface{}{
		"email":    "ana@example.com",
		"clave":    "secreta",
		"password": "secreta",
		"token":    "abc",
	}

	clean := Sanitize(data)
	assert.Equal(t, "ana@example.com", clean["email"])
	assert.NotContains(t, clean, "clave")
	assert.NotContains(t, clean, "password")
	assert.NotContains(t, clean, "token")
}

func TestSanitizeIsRecursive(t *testing.T) {
	data := map[string]interface{}{
		"usuario": map[string]interface{}{
			"nombre":     "Ana",
			"claveVieja": "x",
		},
		"items": []interface{}{
			map[string]interface{}{"refreshToken": "y", "id": 1.0},
			"plain",
		},
	}

	clean := Sanitize(data)
	usuario := clean["usuario"].(map[string]interface{})
	assert.Equal(t, "Ana", usuario["nombre"])
	assert.NotContains(t, usuario, "claveVieja")

	items := clean["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.NotContains(t, first, "refreshToken")
	assert.Equal(t, 1.0, first["id"])
	assert.Equal(t, "plain", items[1])
}

func TestSanitizeNil(t *testing.T) {
	assert.Nil(t, Sanitize(nil))
}
