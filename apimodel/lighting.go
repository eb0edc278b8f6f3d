package apimodel

import (
	"strings"

	"github.com/cunservicios/portal/internal/errors"
)

// MinLightingYear is the first year the lighting methodology applies to.
const MinLightingYear = 2022

// LightingParameters are the regulatory constants of the public-lighting
// methodology for one year.
type LightingParameters struct {
	Methodology             string  `json:"metodologia"`
	Year                    int     `json:"anno"`
	FAOMN                   float64 `json:"faom_n"`
	FAOML                   float64 `json:"faoml"`
	FAOMSMarine             float64 `json:"faoms_marino"`
	NEFraction              float64 `json:"ne_fraccion"`
	ReferenceEfficacyLmW    float64 `json:"eficacia_referencia_lm_w"`
	LandPercentage          float64 `json:"porcentaje_terreno"`
	EnvironmentalCostCapPct float64 `json:"tope_costos_ambientales_sobre_caom"`
}

type LightingLoadClass struct {
	LightingClass int     `json:"clase_iluminacion"`
	LoadKW        float64 `json:"carga_kw"`
	DailyHours    float64 `json:"horas_diarias"`
	BillingDays   float64 `json:"dias_facturacion"`
}

type LightingEnergyLevel struct {
	VoltageLevel   int                 `json:"nivel_tension"`
	TEE            float64             `json:"tee"`
	MeteredKWh     float64             `json:"cee_medido_kwh"`
	EstimatedLoads []LightingLoadClass `json:"aforos"`
}

type LightingAsset struct {
	CRI            float64  `json:"cr_i"`
	CRLBase        float64  `json:"cr_l_base"`
	EfficacyLmW    *float64 `json:"eficacia_lm_w,omitempty"`
	UsefulLifeYear int      `json:"vida_util_anios"`
}

type LightingLand struct {
	AreaM2         float64 `json:"area_m2"`
	CadastralValue float64 `json:"valor_catastral_m2"`
}

type LightingInvestmentLevel struct {
	VoltageLevel   int             `json:"nivel_tension"`
	Assets         []LightingAsset `json:"ucap"`
	Land           []LightingLand  `json:"terrenos"`
	LandPercentage *float64        `json:"porcentaje_terreno,omitempty"`
}

type LightingOutage struct {
	PowerKW float64 `json:"potencia_kw"`
	Hours   float64 `json:"horas_sin_servicio"`
}

type LightingAvailability struct {
	TotalPowerKW float64          `json:"potencia_total_kw"`
	PeriodHours  float64          `json:"horas_periodo"`
	Outages      []LightingOutage `json:"eventos"`
}

type LightingUnavailability struct {
	PowerKW float64 `json:"potencia_kw"`
	Hours   float64 `json:"horas_indisponibilidad"`
}

type LightingAOMLevel struct {
	VoltageLevel int                      `json:"nivel_tension"`
	CRAN         float64                  `json:"cra_n"`
	CRALN        float64                  `json:"cral_n"`
	Events       []LightingUnavailability `json:"vceei_eventos"`
}

// LightingOtherCosts is the COTR breakdown.
type LightingOtherCosts struct {
	Auditing           float64 `json:"interventoria"`
	EnvironmentalCosts float64 `json:"costos_ambientales"`
	Insurance          float64 `json:"polizas"`
	FeesAndTaxes       float64 `json:"tramites_impuestos"`
	Other              float64 `json:"otros"`
}

type LightingPPIUpdate struct {
	BasePPI     float64 `json:"ipp_base"`
	PreviousPPI float64 `json:"ipp_mes_anterior"`
}

// LightingInput is the body of the lighting cost calculation.
type LightingInput struct {
	Municipality     string                    `json:"municipio"`
	Period           string                    `json:"periodo"`
	Year             int                       `json:"anno_aplicacion"`
	ReturnRate       float64                   `json:"tasa_retorno"`
	NEFraction       *float64                  `json:"ne_fraccion,omitempty"`
	FAOMN            *float64                  `json:"faom_n,omitempty"`
	MarineEnv        bool                      `json:"ambiente_marino"`
	EnergyLevels     []LightingEnergyLevel     `json:"energia_niveles"`
	InvestmentLevels []LightingInvestmentLevel `json:"inversion_niveles"`
	Availability     LightingAvailability      `json:"disponibilidad"`
	AOMLevels        []LightingAOMLevel        `json:"aom_niveles"`
	OtherCosts       LightingOtherCosts        `json:"cotr"`
	PPIUpdate        *LightingPPIUpdate        `json:"actualizacion_ipp,omitempty"`
	MixedCEE         *bool                     `json:"usar_formulacion_mixta_cee,omitempty"`
}

// Validate checks what the API would reject before sending the request.
func (in LightingInput) Validate() error {
	switch {
	case len(strings.TrimSpace(in.Municipality)) < 2:
		return errors.Wrapf(errors.ErrInvalidCalculation, "municipio is required")
	case len(strings.TrimSpace(in.Period)) < 3:
		return errors.Wrapf(errors.ErrInvalidCalculation, "periodo is required")
	case in.Year < MinLightingYear:
		return errors.Wrapf(errors.ErrInvalidCalculation, "anno_aplicacion must be %d or later", MinLightingYear)
	case in.ReturnRate <= 0:
		return errors.Wrapf(errors.ErrInvalidCalculation, "tasa_retorno must be positive")
	case len(in.EnergyLevels) == 0:
		return errors.Wrapf(errors.ErrInvalidCalculation, "energia_niveles is empty")
	case len(in.InvestmentLevels) == 0:
		return errors.Wrapf(errors.ErrInvalidCalculation, "inversion_niveles is empty")
	case len(in.AOMLevels) == 0:
		return errors.Wrapf(errors.ErrInvalidCalculation, "aom_niveles is empty")
	}
	return nil
}

type LightingEnergyResult struct {
	VoltageLevel int     `json:"nivel_tension"`
	TEE          float64 `json:"tee"`
	MeteredKWh   float64 `json:"cee_medido_kwh"`
	EstimatedKWh float64 `json:"cee_aforado_kwh"`
	TotalKWh     float64 `json:"cee_total_kwh"`
	CSEEN        float64 `json:"csee_n"`
}

type LightingInvestmentResult struct {
	VoltageLevel int     `json:"nivel_tension"`
	CAAEN        float64 `json:"caae_n"`
	CATN         float64 `json:"cat_n"`
	CAANEN       float64 `json:"caane_n"`
	CAAN         float64 `json:"caa_n"`
	CINVN        float64 `json:"cinv_n"`
}

type LightingAOMResult struct {
	VoltageLevel int     `json:"nivel_tension"`
	VCEEIN       float64 `json:"vceei_n"`
	CRTAN        float64 `json:"crta_n"`
	CAOMN        float64 `json:"caom_n"`
}

type LightingReceiptLine struct {
	Concept string  `json:"concepto"`
	Amount  float64 `json:"valor"`
}

// LightingReceipt is the receipt summary embedded in a calculation.
type LightingReceipt struct {
	Number       string                `json:"numero_recibo"`
	Municipality string                `json:"municipio"`
	Period       string                `json:"periodo"`
	Methodology  string                `json:"metodologia"`
	Lines        []LightingReceiptLine `json:"lineas"`
	Total        float64               `json:"total"`
}

type LightingPPIResult struct {
	Factor float64 `json:"factor_ipp"`
	CINV   float64 `json:"cinv_actualizado"`
	CAOM   float64 `json:"caom_actualizado"`
	CAP    float64 `json:"cap_actualizado"`
}

// LightingResult is the outcome of a lighting cost calculation.
type LightingResult struct {
	TenantID         string                     `json:"tenant_id"`
	Methodology      string                     `json:"metodologia"`
	Municipality     string                     `json:"municipio"`
	Period           string                     `json:"periodo"`
	Year             int                        `json:"anno_aplicacion"`
	Availability     float64                    `json:"id_disponibilidad"`
	FAOML            float64                    `json:"faoml"`
	FAOMS            float64                    `json:"faoms"`
	CSEE             float64                    `json:"csee"`
	CINV             float64                    `json:"cinv"`
	CAOM             float64                    `json:"caom"`
	COTR             float64                    `json:"cotr"`
	CAP              float64                    `json:"cap"`
	EnergyLevels     []LightingEnergyResult     `json:"energia_niveles"`
	InvestmentLevels []LightingInvestmentResult `json:"inversion_niveles"`
	AOMLevels        []LightingAOMResult        `json:"aom_niveles"`
	Receipt          LightingReceipt            `json:"recibo"`
	PPIUpdate        *LightingPPIResult         `json:"actualizacion_ipp,omitempty"`
	Alerts           []string                   `json:"alertas"`
}

// Components returns the CAP components of the calculation.
func (r LightingResult) Components() ReceiptComponents {
	return ReceiptComponents{CSEE: r.CSEE, CINV: r.CINV, CAOM: r.CAOM, COTR: r.COTR}
}

// ReceiptFromCalculation is the body of the endpoint that calculates costs
// and renders a simple receipt in one request.
type ReceiptFromCalculation struct {
	Calculation LightingInput   `json:"calculo"`
	Metadata    ReceiptMetadata `json:"metadata"`
}
