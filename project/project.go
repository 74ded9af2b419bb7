// Package project groups actors into a saveable unit and supplies the
// dropdown lists their blocks select from.
package project

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/stage"
)

// Default names for a fresh project
const (
	DefaultActor    = "Sprite1"
	DefaultMessage  = "message1"
	DefaultVariable = "my variable"
)

// Project is the editable document: actors plus the shared message and
// variable lists
type Project struct {
	Name      string
	Actors    []*Actor
	Variables []string
	Messages  []string
}

// Actor owns one block graph and one sprite
type Actor struct {
	name     string
	graph    *block.Graph
	sprite   *stage.Sprite
	Costumes []string

	project *Project
}

// New creates a project with one actor and default lists
func New(name string) *Project {
	p := &Project{
		Name:      name,
		Variables: []string{DefaultVariable},
		Messages:  []string{DefaultMessage},
	}
	p.AddActor(DefaultActor)
	return p
}

// AddActor appends an actor with a fresh graph; a taken name gets a suffix
func (p *Project) AddActor(name string) *Actor {
	a := &Actor{
		name:     p.uniqueName(name),
		graph:    block.NewGraph(),
		sprite:   stage.NewSprite(),
		Costumes: []string{"costume1", "costume2"},
		project:  p,
	}
	p.Actors = append(p.Actors, a)
	return a
}

// RemoveActor deletes an actor by name
func (p *Project) RemoveActor(name string) bool {
	i := slices.IndexFunc(p.Actors, func(a *Actor) bool { return a.name == name })
	if i < 0 {
		return false
	}
	p.Actors = slices.Delete(p.Actors, i, i+1)
	return true
}

// Actor finds an actor by name
func (p *Project) Actor(name string) *Actor {
	for _, a := range p.Actors {
		if a.name == name {
			return a
		}
	}
	return nil
}

// AddMessage returns the index of a message, appending it when new
func (p *Project) AddMessage(name string) int {
	if i := slices.Index(p.Messages, name); i >= 0 {
		return i
	}
	p.Messages = append(p.Messages, name)
	return len(p.Messages) - 1
}

// AddVariable returns the index of a variable, appending it when new
func (p *Project) AddVariable(name string) int {
	if i := slices.Index(p.Variables, name); i >= 0 {
		return i
	}
	p.Variables = append(p.Variables, name)
	return len(p.Variables) - 1
}

// InitialVars maps every variable to its starting value
func (p *Project) InitialVars() map[string]string {
	vars := make(map[string]string, len(p.Variables))
	for _, v := range p.Variables {
		vars[v] = "0"
	}
	return vars
}

func (p *Project) uniqueName(name string) string {
	if name == "" {
		name = DefaultActor
	}
	if p.Actor(name) == nil {
		return name
	}
	base := strings.TrimRightFunc(name, unicode.IsDigit)
	candidate := name
	for n := 2; p.Actor(candidate) != nil; n++ {
		candidate = base + strconv.Itoa(n)
	}
	return candidate
}

// Name returns the actor name
func (a *Actor) Name() string { return a.name }

// Blocks returns the actor's script graph
func (a *Actor) Blocks() *block.Graph { return a.graph }

// Sprite returns the actor's runtime state
func (a *Actor) Sprite() *stage.Sprite { return a.sprite }

// Choices resolves dropdown lists: costumes are per actor, messages and
// variables come from the project
func (a *Actor) Choices(src block.ChoiceSource) []string {
	s := block.StaticChoices{Costumes: a.Costumes}
	if a.project != nil {
		s.Messages = a.project.Messages
		s.Variables = a.project.Variables
	}
	return s.Choices(src)
}
