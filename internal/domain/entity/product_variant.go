package entity

// SaleKind tipo de venta, determinado por la variante de producto.
type SaleKind string

const (
	KindPortability SaleKind = "PORTABILIDAD"
	KindNewLine     SaleKind = "LINEA_NUEVA"
)

// OriginMarket mercado de la línea que se porta.
type OriginMarket string

const (
	MarketPrepago OriginMarket = "PREPAGO"
	MarketPospago OriginMarket = "POSPAGO"
)

// IsValid informa si m es un mercado de origen conocido.
func (m OriginMarket) IsValid() bool {
	return m == MarketPrepago || m == MarketPospago
}

// ProductVariant unión etiquetada: Portability o NewLine. Exactamente una por venta,
// fija desde la creación. Solo los tipos de este paquete la implementan.
type ProductVariant interface {
	Kind() SaleKind
	// CompanyID empresa contra la que se valida la compatibilidad de plan y promoción.
	CompanyID() string
	isProductVariant()
}

// Portability portabilidad de un número desde una empresa donante.
type Portability struct {
	DonorCompanyID string
	OriginMarket   OriginMarket
	NumberToPort   string
	PIN            string
}

func (Portability) Kind() SaleKind      { return KindPortability }
func (p Portability) CompanyID() string { return p.DonorCompanyID }
func (Portability) isProductVariant()   {}

// NewLine alta de línea nueva con número asignado.
type NewLine struct {
	AssignedNumber  string
	TargetCompanyID string
}

func (NewLine) Kind() SaleKind      { return KindNewLine }
func (n NewLine) CompanyID() string { return n.TargetCompanyID }
func (NewLine) isProductVariant()   {}
