// Package feed construye el feed XML del catálogo para integraciones product_feed.
// El digest (ETag) se calcula sobre la forma canónica C14N del documento, de modo que
// dos feeds con el mismo contenido producen el mismo ETag aunque cambie el formato.
package feed

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/internal/domain/entity"
)

var _ ports.FeedBuilder = (*Builder)(nil)

const (
	Namespace       = "urn:engage:product-feed:1"
	defaultCurrency = "USD"
)

// feedConfig claves opcionales del config de la integración.
type feedConfig struct {
	Title    string `json:"title"`
	Currency string `json:"currency"`
	LinkBase string `json:"link_base"` // si existe, cada ítem lleva <link>{base}/{sku}</link>
}

// Builder arma el documento con etree.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

// Build orden de ítems = orden de products; el caller decide (por nombre).
func (b *Builder) Build(integration *entity.Integration, products []*entity.Product) (*ports.Feed, error) {
	if integration == nil {
		return nil, fmt.Errorf("feed: integración nil")
	}
	var cfg feedConfig
	if len(integration.Config) > 0 {
		if err := json.Unmarshal(integration.Config, &cfg); err != nil {
			return nil, fmt.Errorf("feed: config inválido: %w", err)
		}
	}
	currency := strings.ToUpper(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	title := cfg.Title
	if title == "" {
		title = integration.Name
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("catalog")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("integration", integration.ID)
	root.CreateAttr("count", strconv.Itoa(len(products)))
	root.CreateElement("title").SetText(title)

	items := root.CreateElement("items")
	for _, p := range products {
		it := items.CreateElement("item")
		it.CreateAttr("id", p.ID)
		it.CreateElement("sku").SetText(p.SKU)
		it.CreateElement("name").SetText(p.Name)
		if p.Description != "" {
			it.CreateElement("description").SetText(p.Description)
		}
		if p.CategoryName != "" {
			it.CreateElement("category").SetText(p.CategoryName)
		}
		price := it.CreateElement("price")
		price.CreateAttr("currency", currency)
		price.SetText(p.Price.StringFixed(2))
		avail := "out_of_stock"
		if p.StockQuantity > 0 {
			avail = "in_stock"
		}
		it.CreateElement("availability").SetText(avail)
		it.CreateElement("quantity").SetText(strconv.Itoa(p.StockQuantity))
		if cfg.LinkBase != "" {
			it.CreateElement("link").SetText(strings.TrimRight(cfg.LinkBase, "/") + "/" + p.SKU)
		}
	}

	doc.Indent(2)
	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("feed: serializar: %w", err)
	}
	// digest solo sobre el elemento raíz: la declaración XML no forma parte del contenido
	rootDoc := etree.NewDocument()
	rootDoc.SetRoot(root.Copy())
	rootBytes, err := rootDoc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("feed: serializar: %w", err)
	}
	digest, err := Digest(rootBytes)
	if err != nil {
		return nil, err
	}
	return &ports.Feed{XML: raw, Digest: digest}, nil
}

// Digest SHA-256 hex de la forma canónica del XML.
func Digest(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	canon, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("feed: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}
