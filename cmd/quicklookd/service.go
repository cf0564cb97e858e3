// quicklook - greyscale previews of radiometric instrument bands
//  Copyright (C) 2026, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"errors"

	"github.com/godbus/dbus"
	"github.com/godbus/dbus/introspect"

	"github.com/TheCacophonyProject/quicklook/preview"
)

const (
	dbusName = "org.cacophony.quicklook"
	dbusPath = "/org/cacophony/quicklook"
)

type service struct {
	snapshot *preview.Snapshot
}

func startService(snapshot *preview.Snapshot) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	reply, err := conn.RequestName(dbusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return errors.New("name already taken")
	}

	s := &service{
		snapshot: snapshot,
	}
	conn.Export(s, dbusPath, dbusName)
	conn.Export(genIntrospectable(s), dbusPath, "org.freedesktop.DBus.Introspectable")
	return nil
}

func genIntrospectable(v interface{}) introspect.Introspectable {
	node := &introspect.Node{
		Interfaces: []introspect.Interface{{
			Name:    dbusName,
			Methods: introspect.Methods(v),
		}},
	}
	return introspect.NewIntrospectable(node)
}

// TakeQuicklook saves the latest quicklook as a still
func (s *service) TakeQuicklook() *dbus.Error {
	if err := s.snapshot.Take(); err != nil {
		return makeDbusError("TakeQuicklook", err)
	}
	return nil
}

// Extrema returns the radiance range used for the latest quicklook.
func (s *service) Extrema() (float64, float64, *dbus.Error) {
	g, stats := s.snapshot.Latest()
	if g == nil {
		return 0, 0, makeDbusError("Extrema", errors.New("no quicklooks yet"))
	}
	if !stats.Extrema.Valid() {
		return 0, 0, makeDbusError("Extrema", errors.New("latest band had no valid samples"))
	}
	return float64(stats.Extrema.Min), float64(stats.Extrema.Max), nil
}

func makeDbusError(name string, err error) *dbus.Error {
	return &dbus.Error{
		Name: dbusName + "." + name,
		Body: []interface{}{err.Error()},
	}
}
