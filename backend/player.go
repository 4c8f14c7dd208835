package main

import "github.com/Ardou0/Teeko-IA41/engine"

type IPlayer interface {
	IsHuman() bool
	// Observe is called with every move the other side plays.
	Observe(move engine.Move)
}
