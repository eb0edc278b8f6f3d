package apimodel_test

import (
	"testing"
	"time"

	"github.com/cunservicios/portal/apimodel"
	"github.com/cunservicios/portal/internal/errors"
	"github.com/cunservicios/portal/internal/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNewAPIError(t *testing.T) {
	t.Run("string detail", func(t *testing.T) {
		err := apimodel.NewAPIError(401, []byte(`{"detail":"Correo o contraseña incorrectos"}`))
		require.Equal(t, 401, err.StatusCode)
		require.Equal(t, "Correo o contraseña incorrectos", err.Detail)
		require.Equal(t, "api error 401: Correo o contraseña incorrectos", err.Error())
	})

	t.Run("validation list", func(t *testing.T) {
		body := []byte(`{"detail":[{"loc":["body","new_password"],"msg":"too short"},{"loc":["body"],"msg":"bad"}]}`)
		err := apimodel.NewAPIError(422, body)
		require.Equal(t, "too short; bad", err.Detail)
	})

	t.Run("no json body", func(t *testing.T) {
		err := apimodel.NewAPIError(502, []byte("<html>bad gateway</html>"))
		require.Empty(t, err.Detail)
		require.Equal(t, "api error 502: Bad Gateway", err.Error())
	})
}

func TestMapInvoice(t *testing.T) {
	in := apimodel.InvoiceResponse{
		ID:           7,
		TenantID:     "muni-x",
		Number:       "F-001",
		IssueDate:    "2026-01-05",
		DueDate:      "2026-02-05",
		Total:        125000.5,
		Status:       "pendiente",
		CustomerID:   3,
		Observations: utils.Ptr("lectura estimada"),
		Concepts:     []apimodel.InvoiceConcept{{ID: 1, Concept: "Acueducto", Amount: 100000.5}},
	}

	want := apimodel.Invoice{
		ID:           7,
		TenantID:     "muni-x",
		Number:       "F-001",
		IssuedAt:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		DueAt:        time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
		Total:        125000.5,
		Status:       "pendiente",
		CustomerID:   3,
		Observations: "lectura estimada",
		Concepts:     []apimodel.InvoiceConcept{{ID: 1, Concept: "Acueducto", Amount: 100000.5}},
	}

	if diff := cmp.Diff(want, apimodel.MapInvoice(in)); diff != "" {
		t.Errorf("MapInvoice mismatch (-want +got):\n%s", diff)
	}
}

func TestMapInvoice_Defaults(t *testing.T) {
	got := apimodel.MapInvoice(apimodel.InvoiceResponse{Number: "F-002", IssueDate: "not a date"})
	require.Empty(t, got.Observations)
	require.NotNil(t, got.Concepts)
	require.Empty(t, got.Concepts)
	require.True(t, got.IssuedAt.IsZero())
}

func TestLatestInvoice(t *testing.T) {
	_, ok := apimodel.LatestInvoice(nil)
	require.False(t, ok)

	latest, ok := apimodel.LatestInvoice([]apimodel.InvoiceResponse{
		{Number: "A", IssueDate: "2025-11-01"},
		{Number: "B", IssueDate: "2026-01-01"},
		{Number: "C", IssueDate: "2025-12-31T23:00:00Z"},
		{Number: "D", IssueDate: "2026-01-01"},
	})
	require.True(t, ok)
	require.Equal(t, "B", latest.Number)
}

func TestPQRTypeLabel(t *testing.T) {
	require.Equal(t, "Petición", apimodel.PQRTypeLabel("PETICION"))
	require.Equal(t, "Denuncia", apimodel.PQRTypeLabel("DENUNCIA"))
	require.Equal(t, "Otro", apimodel.PQRTypeLabel("Otro"))
}

func TestReceiptTemplate_Merge(t *testing.T) {
	form := apimodel.DefaultReceiptTemplate("Cunday", "ops@cunday.gov.co")
	form.Metadata.DataSource = ""

	server := apimodel.ReceiptTemplate{
		Municipality: "Nombre del municipio",
		Period:       "2026-03",
		Methodology:  "CREG 101 013 de 2022",
		Components:   apimodel.ReceiptComponents{CSEE: 1},
		Metadata: apimodel.ReceiptMetadata{
			BillingEntity: "Cunservicios",
			NIT:           "900000000-0",
			Contact:       "correo@empresa.com",
			DataSource:    "plantilla_manual_v1",
		},
	}

	merged := form.Merge(server)
	require.Equal(t, "Cunday", merged.Municipality)
	require.Equal(t, "2026-03", merged.Period)
	require.Equal(t, "ops@cunday.gov.co", merged.Metadata.Contact)
	require.Equal(t, "900000000-0", merged.Metadata.NIT)
	require.Equal(t, "plantilla_manual_v1", merged.Metadata.DataSource)
	require.Equal(t, 1.0, merged.Components.Total())
}

func TestLightingInput_Validate(t *testing.T) {
	valid := apimodel.LightingInput{
		Municipality:     "Ubaté",
		Period:           "2026-01",
		Year:             2026,
		ReturnRate:       0.1,
		EnergyLevels:     []apimodel.LightingEnergyLevel{{VoltageLevel: 1}},
		InvestmentLevels: []apimodel.LightingInvestmentLevel{{VoltageLevel: 1}},
		AOMLevels:        []apimodel.LightingAOMLevel{{VoltageLevel: 1}},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(in *apimodel.LightingInput)
	}{
		{"short municipality", func(in *apimodel.LightingInput) { in.Municipality = " U " }},
		{"missing period", func(in *apimodel.LightingInput) { in.Period = "" }},
		{"year before methodology", func(in *apimodel.LightingInput) { in.Year = 2021 }},
		{"zero return rate", func(in *apimodel.LightingInput) { in.ReturnRate = 0 }},
		{"no energy levels", func(in *apimodel.LightingInput) { in.EnergyLevels = nil }},
		{"no investment levels", func(in *apimodel.LightingInput) { in.InvestmentLevels = nil }},
		{"no aom levels", func(in *apimodel.LightingInput) { in.AOMLevels = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.modify(&in)
			require.True(t, errors.Is(in.Validate(), errors.ErrInvalidCalculation))
		})
	}
}
