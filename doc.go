/*
Package bc1ep extracts BC1 (DXT1) endpoint colors from DDS and EDDS
textures and turns them into a row-major numeric dataset.

A DDS file carries a 124-byte header (optionally followed by a 20-byte DX10
extension) and a grid of 8-byte BC1 blocks. Every block starts with two packed
RGB565 endpoints; the package decodes them, expands them to 8-bit and unit
interval triplets, attaches normalized block coordinates and an ordering flag
(c0 > c1 selects the opaque four-color mode) and serializes the result as JSON.

EDDS (Enfusion DDS) inputs are unwrapped first: the largest mip level is read
from the COPY/LZ4 block table and handed to the same block decoder.
*/
package bc1ep
