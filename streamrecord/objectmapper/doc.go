// Package objectmapper resolves the HashMapper used to convert stream records.
//
// A StreamObjectMapper is created once for the configured HashMapper and is then passed as
// streamrecord.HashMapperProvider to the conversion functions of package streamrecord:
//
//	conversions, _ := conversion.NewService(conversion.NewCustomConversions())
//	objectHashMapper, _ := hashmapper.NewObjectHashMapper(conversions, hashmapper.WithTypeAlias("order", Order{}))
//
//	mapper, _ := objectmapper.NewStreamObjectMapper(
//		objectHashMapper,
//		objectmapper.WithConversionService(conversions),
//		objectmapper.WithLogger(slog.Default()),
//	)
//
//	mapRecord, err := streamrecord.ToMapRecord[any, any](mapper, streamrecord.BuildObjectRecord("orders", streamrecord.AutoGenerateID, order))
//	orderRecord, err := streamrecord.ToObjectRecord[Order](mapRecord, mapper)
//
// Binary hash mappers, which only accept []byte keys and values, are wrapped into a BinaryAdapter that coerces
// field mappings read from elsewhere with the conversion service.
package objectmapper
