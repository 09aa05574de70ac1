package alert

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// SignatureNamespace of XML digital signatures.
const SignatureNamespace = "http://www.w3.org/2000/09/xmldsig#"

// NewRoot returns a root element that declares the given default namespace.
func NewRoot(tag string, namespace string) *etree.Element {
	result := etree.NewElement(tag)
	result.CreateAttr("xmlns", namespace)
	return result
}

// SubElement appends a child element with the given text.
func SubElement(parent *etree.Element, tag string, text string) *etree.Element {
	result := parent.CreateElement(tag)
	if text != "" {
		result.SetText(text)
	}
	return result
}

// Serialise writes the tree as XML, without declaration and without canonicalisation.
// Line breaks in text are kept as they are.
func Serialise(root *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(root.Copy())
	doc.WriteSettings.CanonicalText = true
	return doc.WriteToString()
}

// FormatPolygon renders the points as space separated "lat,lon" pairs, in input order.
func FormatPolygon(polygon [][]float64) string {
	pairs := make([]string, 0, len(polygon))
	for _, point := range polygon {
		coordinates := make([]string, len(point))
		for i, c := range point {
			coordinates[i] = FormatCoordinate(c)
		}
		pairs = append(pairs, strings.Join(coordinates, ","))
	}
	return strings.Join(pairs, " ")
}

// FormatCoordinate renders the shortest decimal representation of the value, integral values
// keep one decimal place: 51 becomes "51.0".
func FormatCoordinate(value float64) string {
	result := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.ContainsAny(result, ".eEnN") {
		result += ".0"
	}
	return result
}
