// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package logging

import (
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"
)

const rotateScheme = "rotate"

func init() {
	if err := zap.RegisterSink(rotateScheme, newRotatingSink); err != nil {
		panic(err)
	}
}

type rotatingSink struct {
	*lumberjack.Logger
}

func (rotatingSink) Sync() error {
	return nil
}

func newRotatingSink(u *url.URL) (zap.Sink, error) {
	path := u.Path
	if path == "" {
		path = u.Opaque
	}
	q := u.Query()
	maxSize, err := sinkParam(q, "max-size")
	if err != nil {
		return nil, err
	}
	maxAge, err := sinkParam(q, "max-age")
	if err != nil {
		return nil, err
	}
	return rotatingSink{
		Logger: &lumberjack.Logger{
			Filename: path,
			MaxSize:  maxSize,
			MaxAge:   maxAge,
			Compress: true,
		},
	}, nil
}

// sinkParam reads a non-negative integer parameter, 0 when absent.
func sinkParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q for the log file", name, raw)
	}
	return v, nil
}

func (f FileConfig) sinkURL() string {
	q := url.Values{}
	q.Set("max-size", strconv.Itoa(f.MaxSize))
	q.Set("max-age", strconv.Itoa(f.MaxAge))
	u := url.URL{Scheme: rotateScheme, Path: f.Path, RawQuery: q.Encode()}
	return u.String()
}
