package slug_test

import (
	"testing"

	"github.com/protecta/crm-pro/pkg/slug"
	"github.com/stretchr/testify/assert"
)

func TestMake_QuitaAcentosYEspacios(t *testing.T) {
	assert.Equal(t, "equipo-aereo-n-1", slug.Make("Equipo Aéreo Nº 1"))
	assert.Equal(t, "ventas-bogota", slug.Make("Ventas Bogotá"))
}

func TestMake_ColapsaSeparadores(t *testing.T) {
	assert.Equal(t, "a-b-c", slug.Make("  a___b -- c  "))
}

func TestMake_Vacio(t *testing.T) {
	assert.Equal(t, "", slug.Make("!!!"))
}
