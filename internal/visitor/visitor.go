// Package visitor adds operations to a fixed set of shapes through double
// dispatch.
package visitor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
)

// Visitor is an operation over every shape kind.
type Visitor interface {
	VisitDot(d *Dot) error
	VisitCircle(c *Circle) error
	VisitRectangle(r *Rectangle) error
}

// Shape accepts visitors.
type Shape interface {
	ID() string
	Accept(v Visitor) error
}

// Dot is a point.
type Dot struct {
	id string
}

// NewDot creates a dot.
func NewDot(id string) *Dot {
	return &Dot{id: id}
}

// ID implements Shape.
func (d *Dot) ID() string { return d.id }

// Accept implements Shape.
func (d *Dot) Accept(v Visitor) error { return v.VisitDot(d) }

// Circle is a circle with a radius.
type Circle struct {
	id     string
	Radius float64
}

// NewCircle creates a circle.
func NewCircle(id string, radius float64) *Circle {
	return &Circle{id: id, Radius: radius}
}

// ID implements Shape.
func (c *Circle) ID() string { return c.id }

// Accept implements Shape.
func (c *Circle) Accept(v Visitor) error { return v.VisitCircle(c) }

// Rectangle is an axis-aligned rectangle.
type Rectangle struct {
	id     string
	Width  float64
	Height float64
}

// NewRectangle creates a rectangle.
func NewRectangle(id string, width, height float64) *Rectangle {
	return &Rectangle{id: id, Width: width, Height: height}
}

// ID implements Shape.
func (r *Rectangle) ID() string { return r.id }

// Accept implements Shape.
func (r *Rectangle) Accept(v Visitor) error { return v.VisitRectangle(r) }

// XMLExporter prints one XML-like line per visited shape.
type XMLExporter struct {
	out io.Writer
}

// NewXMLExporter creates an exporter writing to out.
func NewXMLExporter(out io.Writer) *XMLExporter {
	if out == nil {
		out = io.Discard
	}
	return &XMLExporter{out: out}
}

// VisitDot implements Visitor.
func (x *XMLExporter) VisitDot(d *Dot) error {
	_, err := fmt.Fprintf(x.out, "Exporting dot as XML: <Dot id={%s}>\n", d.ID())
	return err
}

// VisitCircle implements Visitor.
func (x *XMLExporter) VisitCircle(c *Circle) error {
	_, err := fmt.Fprintf(x.out, "Exporting circle as XML: <Circle id={%s} radius={%g}>\n", c.ID(), c.Radius)
	return err
}

// VisitRectangle implements Visitor.
func (x *XMLExporter) VisitRectangle(r *Rectangle) error {
	_, err := fmt.Fprintf(x.out, "Exporting rectangle as XML: <Rectangle id={%s} width={%g} height={%g}>\n",
		r.ID(), r.Width, r.Height)
	return err
}

// AreaVisitor sums the areas of visited shapes.
type AreaVisitor struct {
	Total float64
	ByID  map[string]float64
}

// NewAreaVisitor creates an empty area accumulator.
func NewAreaVisitor() *AreaVisitor {
	return &AreaVisitor{ByID: make(map[string]float64)}
}

func (a *AreaVisitor) add(id string, area float64) error {
	a.ByID[id] = area
	a.Total += area
	return nil
}

// VisitDot implements Visitor. Dots have no area.
func (a *AreaVisitor) VisitDot(d *Dot) error { return a.add(d.ID(), 0) }

// VisitCircle implements Visitor.
func (a *AreaVisitor) VisitCircle(c *Circle) error {
	return a.add(c.ID(), math.Pi*c.Radius*c.Radius)
}

// VisitRectangle implements Visitor.
func (a *AreaVisitor) VisitRectangle(r *Rectangle) error {
	return a.add(r.ID(), r.Width*r.Height)
}

// Canvas holds shapes in insertion order. It is safe for concurrent use.
type Canvas struct {
	mu     sync.RWMutex
	shapes []Shape
}

// NewCanvas creates an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// Push appends a shape. Nil shapes are ignored.
func (c *Canvas) Push(s Shape) {
	if s == nil {
		return
	}
	c.mu.Lock()
	c.shapes = append(c.shapes, s)
	c.mu.Unlock()
}

// Pop removes and returns the last shape.
func (c *Canvas) Pop() (Shape, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.shapes) == 0 {
		return nil, false
	}
	s := c.shapes[len(c.shapes)-1]
	c.shapes[len(c.shapes)-1] = nil
	c.shapes = c.shapes[:len(c.shapes)-1]
	return s, true
}

// Len returns the number of shapes.
func (c *Canvas) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.shapes)
}

// Export visits every shape in insertion order and stops at the first error.
func (c *Canvas) Export(v Visitor) error {
	c.mu.RLock()
	shapes := append([]Shape(nil), c.shapes...)
	c.mu.RUnlock()

	for _, s := range shapes {
		if err := s.Accept(v); err != nil {
			return fmt.Errorf("export %s: %w", s.ID(), err)
		}
	}
	return nil
}

// ExportXML exports every shape to out with an XMLExporter.
func (c *Canvas) ExportXML(out io.Writer) error {
	return c.Export(NewXMLExporter(out))
}

// Demo exports four shapes as XML.
type Demo struct {
	logger *slog.Logger
}

// NewDemo creates the visitor demo.
func NewDemo(logger *slog.Logger) *Demo {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Demo{logger: logger}
}

// Name implements the catalog demo contract.
func (d *Demo) Name() string {
	return "Visitor"
}

// Run executes the demo.
func (d *Demo) Run(_ context.Context, out io.Writer) error {
	canvas := NewCanvas()
	canvas.Push(NewCircle("CircleID", 5))
	canvas.Push(NewRectangle("Rectangle1ID", 4, 6))
	canvas.Push(NewRectangle("Rectangle2ID", 10, 40))
	canvas.Push(NewDot("DotID"))

	if err := canvas.ExportXML(out); err != nil {
		return err
	}

	area := NewAreaVisitor()
	if err := canvas.Export(area); err != nil {
		return err
	}
	d.logger.Debug("canvas exported", "shapes", canvas.Len(), "area", area.Total)
	return nil
}
