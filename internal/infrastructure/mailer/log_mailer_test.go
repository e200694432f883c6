package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/pkg/logger"
)

func TestDispatch_RegistraCamposDelCorreo(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(logger.New(logger.Config{Env: "test", Level: "info", Output: &buf}))

	err := m.Dispatch(context.Background(), ports.Email{
		CompanyID:   "1",
		Subject:     "Stock bajo",
		Departments: []string{"Almacén", "Compras"},
		Body:        "Quedan 12 unidades",
	})
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "mailer", entry["component"])
	assert.Equal(t, "Stock bajo", entry["subject"])
	assert.Equal(t, "Almacén,Compras", entry["to_departments"])
	assert.Equal(t, "INTERNAL", entry["channel"])
}

func TestDispatch_SinDestinatarios(t *testing.T) {
	m := NewLogMailer(nil)
	err := m.Dispatch(context.Background(), ports.Email{Subject: "x"})
	assert.Error(t, err)

	err = m.Dispatch(context.Background(), ports.Email{Subject: "Recordatorio", To: "+57 300", Channel: "WHATSAPP"})
	assert.NoError(t, err)
}
