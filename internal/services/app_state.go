package services

import (
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/state"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/store"
)

// AppState is the process-wide state container and AppStore the
// persistence port behind it. Both are assigned once at startup (and
// by tests), mirroring how the database handles are held.
var (
	AppState *state.Container
	AppStore store.Store
)
