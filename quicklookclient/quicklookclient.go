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

// Package quicklookclient calls the quicklookd D-Bus service.
package quicklookclient

import "github.com/godbus/dbus"

const (
	dbusPath   = "/org/cacophony/quicklook"
	dbusDest   = "org.cacophony.quicklook"
	methodBase = "org.cacophony.quicklook"
)

func getDbusObj() (dbus.BusObject, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}
	obj := conn.Object(dbusDest, dbusPath)
	return obj, nil
}

// TakeQuicklook asks quicklookd to save its latest quicklook as a still.
func TakeQuicklook() error {
	obj, err := getDbusObj()
	if err != nil {
		return err
	}
	return obj.Call(methodBase+".TakeQuicklook", 0).Store()
}

// Extrema returns the radiance range of quicklookd's latest quicklook.
func Extrema() (float64, float64, error) {
	obj, err := getDbusObj()
	if err != nil {
		return 0, 0, err
	}
	var lo, hi float64
	if err := obj.Call(methodBase+".Extrema", 0).Store(&lo, &hi); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}
