package project

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/stage"
)

// FormatVersion is the document version Encode writes and Decode accepts
const FormatVersion = 1

type document struct {
	Version   int             `yaml:"version"`
	Name      string          `yaml:"name"`
	Variables []string        `yaml:"variables"`
	Messages  []string        `yaml:"messages"`
	Actors    []actorDocument `yaml:"actors"`
}

type actorDocument struct {
	Name     string          `yaml:"name"`
	Costumes []string        `yaml:"costumes"`
	Sprite   spriteDocument  `yaml:"sprite"`
	Roots    []block.ID      `yaml:"roots"`
	Blocks   []blockDocument `yaml:"blocks"`
}

type spriteDocument struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Direction float64 `yaml:"direction"`
	Size      float64 `yaml:"size"`
	Costume   int     `yaml:"costume"`
	Visible   bool    `yaml:"visible"`
	Volume    float64 `yaml:"volume"`
}

// blockDocument stores links as ids; parents are rebuilt on decode
type blockDocument struct {
	ID   block.ID `yaml:"id"`
	Kind string   `yaml:"kind"`
	Op   string   `yaml:"op"`
	X    int      `yaml:"x,omitempty"`
	Y    int      `yaml:"y,omitempty"`

	A     float64 `yaml:"a,omitempty"`
	B     float64 `yaml:"b,omitempty"`
	C     float64 `yaml:"c,omitempty"`
	D     float64 `yaml:"d,omitempty"`
	E     float64 `yaml:"e,omitempty"`
	F     float64 `yaml:"f,omitempty"`
	Text  string  `yaml:"text,omitempty"`
	Text2 string  `yaml:"text2,omitempty"`
	Opt   int     `yaml:"opt,omitempty"`

	Next      block.ID    `yaml:"next,omitempty"`
	Child     block.ID    `yaml:"child,omitempty"`
	Child2    block.ID    `yaml:"child2,omitempty"`
	Condition block.ID    `yaml:"condition,omitempty"`
	Args      [3]block.ID `yaml:"args,flow,omitempty"`
}

// Encode serializes a project to YAML
func Encode(p *Project) ([]byte, error) {
	doc := document{
		Version:   FormatVersion,
		Name:      p.Name,
		Variables: p.Variables,
		Messages:  p.Messages,
	}
	for _, a := range p.Actors {
		sp := a.sprite
		ad := actorDocument{
			Name:     a.name,
			Costumes: a.Costumes,
			Sprite: spriteDocument{
				X: sp.X, Y: sp.Y, Direction: sp.Direction, Size: sp.Size,
				Costume: sp.Costume, Visible: sp.Visible, Volume: sp.Volume,
			},
			Roots: a.graph.Roots(),
		}
		for _, b := range a.graph.Blocks() {
			d := b.Def()
			if d == nil {
				return nil, errors.Errorf("actor %q: block %d has unknown kind", a.name, b.ID)
			}
			ad.Blocks = append(ad.Blocks, blockDocument{
				ID: b.ID, Kind: b.Kind.String(), Op: d.Name, X: b.X, Y: b.Y,
				A: b.A, B: b.B, C: b.C, D: b.D, E: b.E, F: b.F,
				Text: b.Text, Text2: b.Text2, Opt: b.Opt,
				Next: b.Next, Child: b.Child, Child2: b.Child2, Condition: b.Condition, Args: b.Args,
			})
		}
		doc.Actors = append(doc.Actors, ad)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, errors.Wrap(err, "encode project")
	}
	return out, nil
}

// Decode parses a YAML project and validates every actor graph
func Decode(data []byte) (*Project, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode project")
	}
	if doc.Version != FormatVersion {
		return nil, errors.Errorf("unsupported project version: %d", doc.Version)
	}

	p := &Project{Name: doc.Name, Variables: doc.Variables, Messages: doc.Messages}
	for _, ad := range doc.Actors {
		g, err := decodeGraph(ad)
		if err != nil {
			return nil, errors.Wrapf(err, "actor %q", ad.Name)
		}
		sp := stage.NewSprite()
		sp.X, sp.Y = stage.Fence(ad.Sprite.X, ad.Sprite.Y, sp.Radius())
		sp.PointIn(ad.Sprite.Direction)
		sp.SetSize(ad.Sprite.Size)
		sp.SetCostume(ad.Sprite.Costume, len(ad.Costumes))
		sp.Visible = ad.Sprite.Visible
		sp.SetVolume(ad.Sprite.Volume)

		a := &Actor{name: ad.Name, graph: g, sprite: sp, Costumes: ad.Costumes, project: p}
		if a.name == "" || p.Actor(a.name) != nil {
			a.name = p.uniqueName(ad.Name)
		}
		p.Actors = append(p.Actors, a)
	}
	return p, nil
}

func decodeGraph(ad actorDocument) (*block.Graph, error) {
	g := block.NewGraph()
	for _, bd := range ad.Blocks {
		k, ok := block.ParseKind(bd.Kind)
		if !ok {
			return nil, errors.Errorf("block %d: unknown kind %q", bd.ID, bd.Kind)
		}
		d := block.LookupName(k, bd.Op)
		if d == nil {
			return nil, errors.Errorf("block %d: unknown %s op %q", bd.ID, bd.Kind, bd.Op)
		}
		if bd.ID <= block.None || g.Get(bd.ID) != nil {
			return nil, errors.Errorf("block %d: invalid or duplicate id", bd.ID)
		}
		g.Add(&block.Block{
			ID: bd.ID, Kind: k, Subtype: d.Subtype, X: bd.X, Y: bd.Y,
			A: bd.A, B: bd.B, C: bd.C, D: bd.D, E: bd.E, F: bd.F,
			Text: bd.Text, Text2: bd.Text2, Opt: bd.Opt,
			Next: bd.Next, Child: bd.Child, Child2: bd.Child2, Condition: bd.Condition, Args: bd.Args,
		})
	}

	for _, b := range g.Blocks() {
		var err error
		b.ForEachLink(func(s block.Slot, id block.ID) {
			child := g.Get(id)
			switch {
			case err != nil:
			case child == nil:
				err = errors.Errorf("block %d %s links missing block %d", b.ID, s, id)
			case child.Parent != block.None:
				err = errors.Errorf("block %d linked twice", id)
			default:
				child.Parent = b.ID
			}
		})
		if err != nil {
			return nil, err
		}
	}
	for _, r := range ad.Roots {
		g.AddRoot(r)
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate graph")
	}
	return g, nil
}
