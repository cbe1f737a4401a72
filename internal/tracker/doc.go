// Package tracker runs the per-frame pupil tracking pipeline.
//
// Each frame goes through a fixed chain of stages: enhancement, face
// search, eye search inside the first face, and iris search inside
// the first eye. A stage that finds nothing ends the chain for that
// frame; it is not an error. Nothing is carried over between frames.
package tracker
