// Package killring provides the handlers for the kill ring commands:
// killing lines, words, regions and rectangles, copying, yanking, cycling
// with yank-pop and browsing the ring.
package killring
