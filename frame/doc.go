// Package frame defines the in-memory records of a frame file.
//
// A Frame holds the header of one frame (its GPS start time, duration, run
// and detectors) and its ADC, processed and simulated channel records. Every
// channel record carries an ordered list of Vect records, each holding a 1-D
// sample array with its dimension metadata.
//
// Records returned by stream readers hold sample data in native byte order;
// the stream package converts to and from the byte order of the file.
package frame
