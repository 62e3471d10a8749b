package core

import (
	"errors"
)

var (
	ErrNoGeometry      = errors.New("no mesh geometry loaded")
	ErrNoSource        = errors.New("no source mesh provided")
	ErrNoTarget        = errors.New("no target mesh provided")
	ErrInvalidLOD      = errors.New("level of detail out of range")
	ErrSelectionLength = errors.New("selection set length does not match vertex count")
	ErrSectionMismatch = errors.New("geometries have different numbers of sections")
	ErrVertexMismatch  = errors.New("geometries have different numbers of vertices")
	ErrNormalsMismatch = errors.New("section normals do not match its vertices")
	ErrZeroVector      = errors.New("vector could not be normalized")
	ErrLineTooShort    = errors.New("line is too short")
	ErrNoTexture       = errors.New("no texture provided")
	ErrNoSpline        = errors.New("no spline points provided")
	ErrUnknownAsset    = errors.New("unknown asset type")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrInvalidRecipe   = errors.New("invalid recipe")
	ErrUnknown         = errors.New("unknown")
)
