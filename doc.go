// Package slash3 builds and navigates Amazon S3 URIs.
//
// A Uri is a validated "s3://bucket/key" locator and a Key is the validated
// path portion after the bucket. Both are immutable values: every derived
// location is a new value and every operation is safe for concurrent use.
//
//	zombies := slash3.MustParseUri("s3://burgers/staff/zombies.jpg")
//	zombies.Bucket()    // "burgers"
//	zombies.Key().Key() // "staff/zombies.jpg"
//
//	prefix, _ := slash3.MustToUri("expo", "").Join("photos")
//	polenta, _ := prefix.Append("/burger-polenta.jpg")
//	polenta.Uri()    // "s3://expo/photos/burger-polenta.jpg"
//	polenta.Parent() // "s3://expo/photos/"
package slash3
