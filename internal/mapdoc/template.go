package mapdoc

import "html/template"

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1, maximum-scale=1">
    <title>{{.Title}}</title>
{{- range .Assets.Stylesheets}}
    <link rel="stylesheet" href="{{.}}">
{{- end}}
    <style>
        :root {
            color-scheme: light;
        }
        html, body {
            height: 100%;
            margin: 0;
            font-family: 'Inter', 'Helvetica Neue', Arial, sans-serif;
            background: #f4f6f8;
            color: #1f2933;
        }
        #map {
            position: absolute;
            inset: 0;
        }
        .map-header {
            position: fixed;
            top: 12px;
            left: 50%;
            transform: translateX(-50%);
            z-index: 1100;
            background: rgba(255, 255, 255, 0.96);
            backdrop-filter: blur(6px);
            padding: 10px 18px;
            border-radius: 16px;
            box-shadow: 0 12px 32px rgba(15, 23, 42, 0.18);
            font-size: 1.05rem;
            font-weight: 600;
            letter-spacing: 0.02em;
            text-align: center;
        }
        .leaflet-container {
            font-size: 15px;
        }
        .leaflet-control-attribution {
            font-size: 11px;
            background: rgba(255, 255, 255, 0.85);
            border-radius: 10px 0 0 0;
            padding: 4px 8px;
        }
        .leaflet-control-layers {
            background: rgba(255, 255, 255, 0.95);
            border-radius: 14px;
            box-shadow: 0 14px 30px rgba(15, 23, 42, 0.2);
            border: 1px solid rgba(15, 23, 42, 0.1);
            padding: 6px 8px;
        }
        .leaflet-control-layers-expanded label {
            margin: 6px 0;
            display: flex;
            gap: 8px;
            align-items: center;
            font-weight: 500;
        }
        .leaflet-popup-content-wrapper {
            border-radius: 18px;
            box-shadow: 0 20px 40px rgba(15, 23, 42, 0.28);
            padding: 0;
            overflow: hidden;
        }
        .leaflet-popup-content {
            margin: 0;
            padding: 0;
            width: auto !important;
            overflow: hidden;
        }
        .popup-card {
            padding: 18px 20px 20px;
            max-width: 280px;
        }
        .popup-header {
            display: flex;
            flex-direction: column;
            gap: 4px;
        }
        .popup-header h3 {
            margin: 0;
            font-size: 1.1rem;
            line-height: 1.3;
        }
        .popup-era {
            margin: 0;
            font-size: 0.78rem;
            letter-spacing: 0.08em;
            text-transform: uppercase;
            color: #64748b;
        }
        .popup-description {
            margin: 14px 0 16px;
            line-height: 1.55;
            color: #374151;
        }
        .popup-image img {
            width: 100%;
            height: auto;
            display: block;
            border-radius: 14px;
            box-shadow: 0 12px 24px rgba(15, 23, 42, 0.22);
        }
        @media (max-width: 600px) {
            .map-header {
                width: calc(100vw - 32px);
                padding: 10px 16px;
                font-size: 1rem;
            }
            .leaflet-container {
                font-size: 14px;
            }
            .leaflet-control-layers {
                font-size: 0.88rem;
                max-width: 220px;
            }
            .leaflet-popup-content-wrapper {
                max-width: calc(100vw - 48px);
            }
            .popup-card {
                max-width: calc(100vw - 64px);
                padding: 16px 18px 18px;
            }
        }
    </style>
</head>
<body>
    <div id="map" role="region" aria-label="{{.Title}} map"></div>
    <div class="map-header">{{.Header}}</div>
{{range .Assets.Scripts}}
    <script src="{{.}}"></script>
{{- end}}
    <script>
        const map = L.map('map', { zoomControl: true, preferCanvas: false });

        const baseLayers = {};
        function addBaseLayer(tile, active) {
            const layer = L.tileLayer(tile.url, {
                maxZoom: tile.maxZoom,
                attribution: tile.attribution
            });
            baseLayers[tile.name] = layer;
            if (active) {
                layer.addTo(map);
            }
        }
{{- range $i, $tile := .BaseLayers}}
        addBaseLayer({{$tile}}, {{eq $i 0}});
{{- end}}

        const clusters = [];
        const overlays = {};
        function addEraLayer(era) {
            const cluster = L.markerClusterGroup({
                disableClusteringAtZoom: {{.DisableClusteringAtZoom}},
                spiderfyOnMaxZoom: true,
                showCoverageOnHover: false
            });
            clusters.push(cluster);
            overlays[era.html] = cluster;
            cluster.addTo(map);
        }
{{- range .Legend}}
        addEraLayer({{.}});
{{- end}}

        function placeMarker(marker) {
            const icon = L.AwesomeMarkers.icon({
                prefix: 'fa',
                icon: marker.icon,
                markerColor: marker.color,
                iconColor: 'white',
                extraClasses: 'fa-rotate-0'
            });
            L.marker([marker.lat, marker.lon], { icon: icon })
                .bindPopup(marker.popup, { maxWidth: {{.PopupMaxWidth}}, autoPanPadding: [30, 30] })
                .addTo(marker.layer >= 0 ? clusters[marker.layer] : map);
        }
{{- range .Markers}}
        placeMarker({{.}});
{{- end}}
{{if .HasBounds}}
        map.fitBounds({{.Corners}}, { padding: [{{.FitPadding}}, {{.FitPadding}}] });
{{- else}}
        map.setView({{.DefaultCenter}}, {{.DefaultZoom}});
{{- end}}
        L.control.layers(baseLayers, overlays, { collapsed: true, position: 'topright' }).addTo(map);
    </script>
</body>
</html>
`
