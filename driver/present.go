// Copyright 2024 RayGyoe. All rights reserved.

package driver

import "errors"

// Presenter is the interface that a GPU implements to
// support presentation of rendering results on a display.
// GPU implementations are allowed to not support
// presentation, in which case the error value returned
// from NewSwapchain must be ErrCannotPresent.
type Presenter interface {
	// NewSwapchain creates a new swapchain.
	NewSwapchain(config *SwapchainConfig) (Swapchain, error)
}

// WindowHandle identifies a native window.
// How the fields are interpreted is platform and backend
// specific; the driver consumes them opaquely and performs
// no windowing itself.
type WindowHandle struct {
	// Display is the native display connection, if any.
	Display uintptr
	// Window is the native window or view handle.
	Window uintptr
	// Surface optionally provides a ready-made native
	// presentation surface (e.g., a VkSurfaceKHR created
	// by the windowing layer). When non-zero, backends
	// that can consume it directly will prefer it over
	// Display/Window.
	Surface uint64
}

// SwapchainConfig describes the initial state of a
// swapchain.
type SwapchainConfig struct {
	Window WindowHandle
	// Requested size of the color buffers, in pixels.
	// The implementation may pick different values to
	// satisfy surface bounds.
	Width  int
	Height int
	// Requested number of color buffers. Clamped to what
	// the presentation engine supports; at most three
	// buffers are ever used.
	BufferCount int
	// Requested depth/stencil precision, in bits.
	// Zero disables the respective aspect. The closest
	// supported format is selected.
	DepthBits   int
	StencilBits int
	// Sample count for multi-sampled rendering.
	// Values less than two select single sampling.
	Samples int
	// Vsync interval. Zero lets presentation run unsynced
	// when the presentation engine allows it.
	VsyncInterval int
}

// Swapchain is the interface that defines a presentable
// swapchain.
// Such a swapchain is created by a GPU that implements the
// Presenter interface.
type Swapchain interface {
	Destroyer

	// Views returns the list of image views that comprise
	// the swapchain's color buffers.
	// The views are owned by the swapchain and must not be
	// destroyed by client code. This list becomes invalid
	// when Recreate or Resize is called.
	Views() []ImageView

	// DepthView returns the view of the swapchain's
	// depth/stencil buffer, or nil if the swapchain was
	// configured without one.
	DepthView() ImageView

	// Next returns the index of the next writable view in
	// the list returned by Views.
	// If all views are currently acquired, it returns a
	// non-nil error that wraps ErrNoBackbuffer. If the
	// error wraps ErrSwapchain instead, the swapchain must
	// be recreated.
	Next() (int, error)

	// Present presents the view identified by index, which
	// must have been acquired by a call to Next.
	Present(index int) error

	// Resize updates the size of the swapchain's buffers.
	// It is a no-op when the current extent already equals
	// the requested one. All acquired views must have been
	// presented before this method is called.
	Resize(width, height int) error

	// SetVsync updates the vsync interval, recreating only
	// what the new presentation mode requires.
	SetVsync(interval int) error

	// Recreate recreates the swapchain, after which the
	// Views method must be called to obtain the new views.
	// It must only be called when Next or Present fails
	// with an error that wraps ErrSwapchain. All views
	// acquired from Next must have been presented.
	Recreate() error

	// Format returns the PixelFmt of the swapchain's
	// color buffers.
	Format() PixelFmt

	// DepthFormat returns the PixelFmt selected for the
	// depth/stencil buffer, or FInvalid if there is none.
	DepthFormat() PixelFmt

	// Extent returns the current size of the swapchain's
	// buffers, in pixels.
	Extent() (width, height int)
}

// ErrCannotPresent means that presentation is not supported.
var ErrCannotPresent = errors.New("driver: cannot present")

// ErrWindow means that a Swapchain's window is invalid.
var ErrWindow = errors.New("driver: invalid window")

// ErrSwapchain means that a Swapchain is invalid.
// When this error occurs, the Swapchain's Recreate method
// must be called (and all of its views recreated).
var ErrSwapchain = errors.New("driver: invalid swapchain")

// ErrNoBackbuffer means that no backbuffer is available for
// rendering. It may happen when client code acquires
// multiple backbuffers and does not present them.
var ErrNoBackbuffer = errors.New("driver: no backbuffer available")
