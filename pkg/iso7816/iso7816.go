/*
Package iso7816 implements the Command APDU (Application Protocol Data Unit) of the ISO/IEC 7816-4 standard.

It decodes raw command bytes into an immutable CommandAPDU and encodes a CommandAPDU back into its canonical byte layout, covering the seven encoding cases (1, 2s, 2e, 3s, 3e, 4s, 4e) of ISO/IEC 7816-3.

# Decoding

A command header does not announce its layout. ParseCommandAPDU infers it from the total length and from the fifth byte, which is either a short Lc/Le or the 0x00 marker of the extended form. Input that fits no case is rejected with an error wrapping ErrMalformedAPDU (ErrTooShort or ErrInvalidLength).

# Expected length (Ne)

A zero Le byte (or byte pair) is a wildcard meaning "as many bytes as the form allows". The model stores the wildcard as its value: 256 in short form, 65536 in extended form. Ne == 0 means no Le field.

# Encoding

Bytes never fails. The form is not stored: it is Extended when Nc > 255 or Ne > 256, Short otherwise. A command parsed from an extended encoding that a short one could carry therefore re-encodes in short form.

# Usage Example

	cmd, err := iso7816.ParseCommandAPDUHex("00 A4 04 00 07 A0000000041010 00")
	if err != nil {
	    log.Fatal(err)
	}

	fmt.Println(cmd.Case())         // CASE-4s
	fmt.Printf("%X\n", cmd.Data())  // A0000000041010
	fmt.Println(cmd.Ne())           // 256
	fmt.Printf("%X\n", cmd.Bytes()) // 00A4040007A000000004101000

	// Generate a human-readable report for debugging
	fmt.Println(cmd.Describe())
*/
package iso7816
