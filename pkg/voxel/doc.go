// Package voxel defines the occupancy grids shared by the drawing engine:
// the three-axis solid (Grid), the two-axis silhouette (Plane), and the
// bounds normalizer that shifts either one so its minimum occupied
// coordinate is zero.
package voxel
