package xsdgen

import "encoding/xml"

const xsNamespace = "http://www.w3.org/2001/XMLSchema"

type xsdSchema struct {
	XMLName            xml.Name      `xml:"xs:schema"`
	XS                 string        `xml:"xmlns:xs,attr"`
	TNS                string        `xml:"xmlns:tns,attr,omitempty"`
	TargetNamespace    string        `xml:"targetNamespace,attr,omitempty"`
	ElementFormDefault string        `xml:"elementFormDefault,attr"`
	Elements           []particle    `xml:"xs:element"`
	ComplexTypes       []complexType `xml:"xs:complexType"`
	SimpleTypes        []simpleType  `xml:"xs:simpleType"`
}

// particle is an xs:element, xs:sequence, xs:choice or xs:all; the kind
// is carried by XMLName.
type particle struct {
	XMLName   xml.Name
	Name      string     `xml:"name,attr,omitempty"`
	Type      string     `xml:"type,attr,omitempty"`
	MinOccurs string     `xml:"minOccurs,attr,omitempty"`
	MaxOccurs string     `xml:"maxOccurs,attr,omitempty"`
	Items     []particle `xml:",omitempty"`
}

type complexType struct {
	Name          string         `xml:"name,attr"`
	Mixed         bool           `xml:"mixed,attr,omitempty"`
	Annotation    *annotation    `xml:"xs:annotation,omitempty"`
	SimpleContent *simpleContent `xml:"xs:simpleContent,omitempty"`
	Particle      *particle
	Attributes    []attribute `xml:"xs:attribute"`
}

type annotation struct {
	Documentation []string `xml:"xs:documentation"`
}

type simpleContent struct {
	Extension extension `xml:"xs:extension"`
}

type extension struct {
	Base       string      `xml:"base,attr"`
	Attributes []attribute `xml:"xs:attribute"`
}

type attribute struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
	Use  string `xml:"use,attr,omitempty"`
}

type simpleType struct {
	Name        string      `xml:"name,attr"`
	Restriction restriction `xml:"xs:restriction"`
}

type restriction struct {
	Base         string        `xml:"base,attr"`
	Enumerations []enumeration `xml:"xs:enumeration"`
}

type enumeration struct {
	Value string `xml:"value,attr"`
}
