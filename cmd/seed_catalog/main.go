// seed_catalog aplica el esquema y carga empresas, planes y promociones desde el XML
// exportado por el sistema comercial.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.xml]
// Por defecto busca catalogo.xml en el directorio actual. Sin archivo solo migra.
package main

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-api/pkg/config"
)

type catalogo struct {
	Empresas []struct {
		ID     string `xml:"id,attr"`
		Nombre string `xml:"nombre,attr"`
		Activa *bool  `xml:"activa,attr"`
	} `xml:"empresas>empresa"`
	Planes []struct {
		ID      string `xml:"id,attr"`
		Empresa string `xml:"empresa,attr"`
		Nombre  string `xml:"nombre,attr"`
		Precio  string `xml:"precio,attr"`
		Activo  *bool  `xml:"activo,attr"`
	} `xml:"planes>plan"`
	Promociones []struct {
		ID        string `xml:"id,attr"`
		Empresa   string `xml:"empresa,attr"`
		Plan      string `xml:"plan,attr"`
		Nombre    string `xml:"nombre,attr"`
		Descuento string `xml:"descuento,attr"`
		Desde     string `xml:"desde,attr"`
		Hasta     string `xml:"hasta,attr"`
		Activa    *bool  `xml:"activa,attr"`
	} `xml:"promociones>promocion"`
}

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fail("migrar", err)
	}
	fmt.Println("Esquema aplicado")

	f, err := os.Open(xmlPath)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Printf("%s no existe: catálogo sin cambios\n", xmlPath)
		return
	}
	if err != nil {
		fail("abrir XML", err)
	}
	defer f.Close()

	var cat catalogo
	dec := xml.NewDecoder(f)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&cat); err != nil {
		fail("decodificar XML", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		fail("iniciar transacción", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	repo := postgres.NewCatalogRepository(tx)

	for _, e := range cat.Empresas {
		c := entity.OriginCompany{ID: strings.TrimSpace(e.ID), Name: strings.TrimSpace(e.Nombre), Active: flag(e.Activa)}
		if err := repo.UpsertCompany(ctx, c); err != nil {
			fail("empresa "+c.ID, err)
		}
	}
	for _, p := range cat.Planes {
		price, err := decimal.NewFromString(strings.TrimSpace(p.Precio))
		if err != nil {
			fail("precio del plan "+p.ID, err)
		}
		plan := entity.Plan{
			ID:        strings.TrimSpace(p.ID),
			CompanyID: strings.TrimSpace(p.Empresa),
			Name:      strings.TrimSpace(p.Nombre),
			BasePrice: price,
			Active:    flag(p.Activo),
		}
		if err := repo.UpsertPlan(ctx, plan); err != nil {
			fail("plan "+plan.ID, err)
		}
	}
	for _, p := range cat.Promociones {
		pct, err := decimal.NewFromString(strings.TrimSpace(p.Descuento))
		if err != nil {
			fail("descuento de la promoción "+p.ID, err)
		}
		from, err := parseDate(p.Desde)
		if err != nil {
			fail("vigencia de la promoción "+p.ID, err)
		}
		promo := entity.Promotion{
			ID:              strings.TrimSpace(p.ID),
			CompanyID:       strings.TrimSpace(p.Empresa),
			PlanID:          strings.TrimSpace(p.Plan),
			Name:            strings.TrimSpace(p.Nombre),
			DiscountPercent: pct,
			ValidFrom:       from,
			Active:          flag(p.Activa),
		}
		if strings.TrimSpace(p.Hasta) != "" {
			to, err := parseDate(p.Hasta)
			if err != nil {
				fail("vigencia de la promoción "+p.ID, err)
			}
			promo.ValidTo = &to
		}
		if err := repo.UpsertPromotion(ctx, promo); err != nil {
			fail("promoción "+promo.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		fail("confirmar transacción", err)
	}
	fmt.Printf("Cargado %s: %d empresas, %d planes, %d promociones\n",
		xmlPath, len(cat.Empresas), len(cat.Planes), len(cat.Promociones))
}

// flag atributo booleano opcional; ausente = true.
func flag(b *bool) bool {
	return b == nil || *b
}

// parseDate acepta fecha (2006-01-02, en UTC) o RFC 3339.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.RFC3339, s)
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}
