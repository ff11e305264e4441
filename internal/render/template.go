package render

import "html/template"

// pageTemplate mirrors the page folium produces: Leaflet with awesome-markers
// icons, one marker per GeoJSON feature.
var pageTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta http-equiv="content-type" content="text/html; charset=UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0, maximum-scale=1.0, user-scalable=no" />
    <title>Ближайшие кофейни</title>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/leaflet@1.9.3/dist/leaflet.css"/>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@3.4.1/dist/css/bootstrap.min.css"/>
    <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.css"/>
    <script src="https://cdn.jsdelivr.net/npm/leaflet@1.9.3/dist/leaflet.js"></script>
    <script src="https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.js"></script>
    <style>
        html, body { width: 100%; height: 100%; margin: 0; padding: 0; }
        #map { position: absolute; top: 0; bottom: 0; right: 0; left: 0; }
    </style>
</head>
<body>
    <div id="map"></div>
    <script>
        var map = L.map("map").setView([{{.Latitude}}, {{.Longitude}}], {{.Zoom}});

        L.tileLayer("https://tile.openstreetmap.org/{z}/{x}/{y}.png", {
            maxZoom: 19,
            attribution: "&copy; <a href=\"https://www.openstreetmap.org/copyright\">OpenStreetMap</a> contributors"
        }).addTo(map);

        var markers = {{.Markers}};

        L.geoJSON(markers, {
            pointToLayer: function (feature, latlng) {
                var icon = L.AwesomeMarkers.icon({
                    icon: "info-sign",
                    prefix: "glyphicon",
                    markerColor: feature.properties.color
                });
                return L.marker(latlng, {icon: icon});
            },
            onEachFeature: function (feature, layer) {
                layer.bindPopup(feature.properties.popup, {maxWidth: 300});
            }
        }).addTo(map);
    </script>
</body>
</html>
`))
