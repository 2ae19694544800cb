// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

/*
Package services provides suture.Service wrappers for VistaGuide components.

Each wrapper adapts a component's lifecycle (ListenAndServe, periodic loop)
to suture's context-aware Serve pattern and implements fmt.Stringer so the
supervisor can name the service in its logs.

Available services:

  - HTTPServerService wraps *http.Server with graceful shutdown.
  - BadgerGCService runs periodic value-log garbage collection on the
    preferences database.
*/
package services
